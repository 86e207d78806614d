package bootstrap

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	validate = newValidator()
	// hostnames checks the host part of socket addresses
	hostnames = validator.New()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// errors are only possible for empty tags or nil functions
	_ = v.RegisterValidation("socket_addr", func(fl validator.FieldLevel) bool {
		return isSocketAddr(fl.Field().String())
	})
	return v
}

// isSocketAddr reports whether address is host:port with a non-empty host,
// which is either an IP address or an RFC 1123 hostname, and a port in
// 1..65535. IPv6 hosts are given in brackets.
func isSocketAddr(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.ParseUint(port, 10, 16)
	if err != nil || n == 0 {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	// dotted numbers that do not parse as an IP are not hostnames either
	if strings.Trim(host, "0123456789.") == "" {
		return false
	}
	return hostnames.Var(host, "hostname_rfc1123") == nil
}

// validateStruct runs the struct tag rules of s and the given extra checks,
// collecting every violation. The returned error is an InvalidConfigError
// mentioning path, or nil.
func validateStruct(path string, s interface{}, checks ...func() error) error {
	var result *multierror.Error

	err := validate.Struct(s)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			result = multierror.Append(result, describeFieldError(fieldErr))
		}
	} else if err != nil {
		result = multierror.Append(result, err)
	}

	for _, check := range checks {
		if err := check(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return NewInvalidConfigErrorf("invalid config %s: %w", path, err)
	}
	return nil
}

func describeFieldError(err validator.FieldError) error {
	switch err.Tag() {
	case "required":
		return fmt.Errorf("%s is required", err.Namespace())
	case "socket_addr":
		return fmt.Errorf("%s: invalid address %q, expected host:port", err.Namespace(), err.Value())
	default:
		if err.Param() != "" {
			return fmt.Errorf("%s: value %v does not satisfy %s=%s", err.Namespace(), err.Value(), err.Tag(), err.Param())
		}
		return fmt.Errorf("%s: value %v does not satisfy %s", err.Namespace(), err.Value(), err.Tag())
	}
}

// ValidateAddress returns an InvalidConfigError if address is not of the form
// host:port, see isSocketAddr.
func ValidateAddress(name, address string) error {
	err := validate.Var(address, "required,socket_addr")
	if err != nil {
		return NewInvalidConfigErrorf("invalid %s %q: expected host:port", name, address)
	}
	return nil
}
