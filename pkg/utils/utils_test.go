package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	jm := NewJWTManager("test-secret", "freightpro", 1)

	token, err := jm.GenerateToken("64b7f0c2a1b2c3d4e5f60718", "ops@example.com", "Ops")
	require.NoError(t, err)

	claims, err := jm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.User.ID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "freightpro", claims.Issuer)
}

func TestJWTManager_AcceptsLoginServicePayload(t *testing.T) {
	secret := []byte("test-secret")
	// tokens from the login service carry only {"user":{"id":...}} and an expiry
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]interface{}{"id": "user-42"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	claims, err := NewJWTManager("test-secret", "freightpro", 1).ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.User.ID)
}

func TestJWTManager_Rejects(t *testing.T) {
	jm := NewJWTManager("test-secret", "freightpro", 1)

	other, err := NewJWTManager("other-secret", "freightpro", 1).GenerateToken("u1", "", "")
	require.NoError(t, err)
	_, err = jm.ValidateToken(other)
	assert.Error(t, err, "wrong signature")

	expired, err := NewJWTManager("test-secret", "freightpro", -1).GenerateToken("u1", "", "")
	require.NoError(t, err)
	_, err = jm.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noUser, err := jm.GenerateToken("", "", "")
	require.NoError(t, err)
	_, err = jm.ValidateToken(noUser)
	assert.ErrorIs(t, err, ErrMissingUser)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user": map[string]interface{}{"id": "u1"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = jm.ValidateToken(unsigned)
	assert.Error(t, err)

	_, err = jm.ValidateToken("not.a.token")
	assert.Error(t, err)
}

type lineRequest struct {
	LineName string `json:"lineName" validate:"required,min=2,max=100"`
}

type destinationRequest struct {
	DestinationName string        `json:"destinationName" validate:"required,min=2,max=100"`
	ShippingLines   []lineRequest `json:"shippingLines" validate:"dive"`
	Ref             string        `json:"ref,omitempty" validate:"omitempty,mongodb"`
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(destinationRequest{
		DestinationName: "Port of Oslo",
		ShippingLines:   []lineRequest{{LineName: "Maersk"}},
		Ref:             "64b7f0c2a1b2c3d4e5f60718",
	})
	assert.NoError(t, err)
}

func TestValidator_FieldPathsAndDefaultMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(destinationRequest{
		DestinationName: "",
		ShippingLines:   []lineRequest{{LineName: "OK line"}, {LineName: "X"}},
		Ref:             "nope",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, ValidationMessage, appErr.Message)
	assert.Equal(t, []apperrors.FieldError{
		{Field: "destinationName", Message: "destinationName is required"},
		{Field: "shippingLines[1].lineName", Message: "lineName must be at least 2 characters"},
		{Field: "ref", Message: "ref must be a valid ObjectID"},
	}, appErr.Fields)
}

func TestValidator_RegisteredMessages(t *testing.T) {
	v := NewValidator()
	v.RegisterMessage("destinationName", "required", "POD destination name is required")
	v.RegisterMessage("lineName", "min", "Shipping line name must be between 2 and 100 characters")

	err := v.Validate(destinationRequest{ShippingLines: []lineRequest{{LineName: "X"}}})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "POD destination name is required", appErr.Fields[0].Message)
	assert.Equal(t, "Shipping line name must be between 2 and 100 characters", appErr.Fields[1].Message)
}

func TestNewAppErrorResponse(t *testing.T) {
	resp := NewAppErrorResponse(apperrors.Validation("Validation errors",
		apperrors.FieldError{Field: "id", Message: "Invalid destination ID format"}))

	assert.False(t, resp.Success)
	assert.Equal(t, "Validation errors", resp.Message)
	assert.Equal(t, "VALIDATION", resp.Error)
	assert.Len(t, resp.Errors, 1)
}
