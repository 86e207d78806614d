package unittest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/encodable"
)

func TemplateFixture(t testing.TB, validatorsCount uint) *bootstrap.Template {
	template, err := bootstrap.NewTemplate(validatorsCount, bootstrap.DefaultConsensusConfig(), time.Now())
	require.NoError(t, err)
	return template
}

// AddressFixture returns a distinct loopback peer address for index i.
func AddressFixture(i int) string {
	return fmt.Sprintf("127.0.0.1:%d", 6200+i)
}

func NodeInfoPubFixture(t testing.TB, template *bootstrap.Template, address string) bootstrap.NodeInfoPub {
	return bootstrap.NodeInfoPub{
		Address:         address,
		ConsensusKey:    encodable.ConsensusPubKey{PublicKey: ConsensusKeyFixture(t).PublicKey()},
		ServiceKey:      encodable.ServicePubKey{PublicKey: ServiceKeyFixture(t).PublicKey()},
		TemplateHash:    template.Hash,
		ValidatorsCount: template.ValidatorsCount,
		Consensus:       template.Consensus,
	}
}

func NodeInfoPubsFixture(t testing.TB, template *bootstrap.Template, n int) []bootstrap.NodeInfoPub {
	infos := make([]bootstrap.NodeInfoPub, 0, n)
	for i := 0; i < n; i++ {
		infos = append(infos, NodeInfoPubFixture(t, template, AddressFixture(i)))
	}
	return infos
}
