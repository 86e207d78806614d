package unittest

import (
	"testing"

	"github.com/onflow/flow-go/crypto"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/module/keys"
)

func ConsensusKeyFixture(t testing.TB) crypto.PrivateKey {
	key, err := keys.GenerateKey(encodable.ConsensusKeyAlgorithm)
	require.NoError(t, err)
	return key
}

func ServiceKeyFixture(t testing.TB) crypto.PrivateKey {
	key, err := keys.GenerateKey(encodable.ServiceKeyAlgorithm)
	require.NoError(t, err)
	return key
}
