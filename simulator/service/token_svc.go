package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const tokenIssuer = "schedsim"

func (svc *Service) TokenEnabled() bool {
	return svc.tokenConfig.Enable
}

// IssueToken verifies the provided public key and generates a JWT token if valid
func (svc *Service) IssueToken(ctx context.Context, clientID string, publicKeyPEM string) (string, int64, error) {
	if !svc.TokenEnabled() {
		return "", 0, domain.ErrTokenDisabled
	}
	if err := svc.VerifyPublicKey(publicKeyPEM); err != nil {
		return "", 0, errors.Wrapf(domain.ErrInvalidToken, "public key verification failed: %v", err)
	}
	token, claims, err := svc.generateJWT(ctx, clientID)
	if err != nil {
		return "", 0, fmt.Errorf("JWT generation failed: %v", err)
	}
	return token, claims.ExpiresAt.Unix(), nil
}

// VerifyPublicKey verifies if the provided public key matches our private key
func (svc *Service) VerifyPublicKey(publicKeyPEM string) error {
	rsaPublicKey, err := util.PEMToRSAPublicKey(publicKeyPEM)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %v", err)
	}
	if !rsaPublicKey.Equal(&svc.jwtPrivateKey.PublicKey) {
		return fmt.Errorf("public key does not match server's private key")
	}
	return nil
}

// VerifyToken validates tokenString and returns its claims.
func (svc *Service) VerifyToken(ctx context.Context, tokenString string) (domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &svc.jwtPrivateKey.PublicKey, nil
	})
	if err != nil {
		return domain.Claims{}, errors.Wrap(domain.ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return *claims, nil
}

func (svc *Service) generateJWT(ctx context.Context, clientID string) (string, domain.Claims, error) {
	expireHr := svc.tokenConfig.TokenDurationHr
	if expireHr <= 0 {
		logger.Logger(ctx).Warn().Msgf("invalid token duration hr %d, defaulting to 24 hours", expireHr)
		expireHr = 24
	}

	now := time.Now()
	claims := domain.Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHr) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   clientID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenStr, err := token.SignedString(svc.jwtPrivateKey)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("failed to sign JWT token: %v", err)
	}
	return tokenStr, claims, nil
}
