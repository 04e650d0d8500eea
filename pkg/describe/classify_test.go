package describe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "gone"}

	require.True(t, IsCode(err, "ResourceNotFoundException"))
	require.True(t, IsCode(err, "ThrottlingException", "ResourceNotFoundException"))
	require.False(t, IsCode(err, "ThrottlingException"))
}

func TestIsCodeMatchesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("getting policy: %w", &smithy.GenericAPIError{Code: "NoSuchTagSet"})

	require.True(t, IsCode(err, "NoSuchTagSet"))
}

func TestIsCodeIgnoresPlainErrors(t *testing.T) {
	require.False(t, IsCode(errors.New("dial tcp: timeout"), "ResourceNotFoundException"))
	require.False(t, IsCode(nil, "ResourceNotFoundException"))
}

func TestAbsenceOf(t *testing.T) {
	absent := AbsenceOf("NoSuchLifecycleConfiguration", "NoSuchTagSet")

	require.True(t, absent(&smithy.GenericAPIError{Code: "NoSuchTagSet"}))
	require.True(t, absent(&smithy.GenericAPIError{Code: "NoSuchLifecycleConfiguration"}))
	require.False(t, absent(&smithy.GenericAPIError{Code: "AccessDenied"}))
	require.False(t, absent(errors.New("not an api error")))
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "function", ID: "billing-report"}
	require.Equal(t, `function "billing-report" not found`, err.Error())

	wrapped := fmt.Errorf("describe: %w", err)
	require.True(t, IsNotFound(wrapped))
	require.False(t, IsNotFound(errors.New("other")))
	require.False(t, IsNotFound(nil))
}
