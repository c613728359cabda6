package services

import (
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOperatorService(t *testing.T) InterfaceOperatorService {
	t.Helper()
	cfg := newTestConfig()
	return NewOperatorService(newTestDB(t), cfg, NewJWTService(cfg))
}

func TestOperatorLogin(t *testing.T) {
	svc := newOperatorService(t)

	operator := &models.Operator{Username: "zhangsan"}
	require.NoError(t, svc.CreateOperator(operator, "s3cret"))
	assert.Equal(t, "operator", operator.Role)

	token, loggedIn, err := svc.Login("zhangsan", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, operator.ID, loggedIn.ID)

	_, _, err = svc.Login("zhangsan", "wrong")
	assert.Error(t, err)
	_, _, err = svc.Login("nobody", "s3cret")
	assert.Error(t, err)
}

func TestCreateOperatorDuplicateUsername(t *testing.T) {
	svc := newOperatorService(t)

	require.NoError(t, svc.CreateOperator(&models.Operator{Username: "dup"}, "pw1"))
	assert.Error(t, svc.CreateOperator(&models.Operator{Username: "dup"}, "pw2"))
}

func TestEnsureDefaultOperator(t *testing.T) {
	cfg := newTestConfig()
	db := newTestDB(t)
	svc := NewOperatorService(db, cfg, NewJWTService(cfg))

	require.NoError(t, svc.EnsureDefaultOperator())

	token, operator, err := svc.Login("admin", cfg.DefaultOperatorPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", operator.Role)

	// 已有账户时不重复创建
	require.NoError(t, svc.EnsureDefaultOperator())
	var count int64
	require.NoError(t, db.Model(&models.Operator{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(newTestConfig())

	token, err := svc.GenerateToken(7, "zhangsan", "operator")
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.OperatorID)
	assert.Equal(t, "zhangsan", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "dcim-asset-service", claims.Issuer)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(newTestConfig())

	token, err := svc.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	otherCfg := newTestConfig()
	otherCfg.JWTSecretKey = "different_secret"
	other := NewJWTService(otherCfg)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
