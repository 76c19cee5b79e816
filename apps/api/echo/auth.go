package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
)

const (
	claimsContextKey  = "userToken"
	profileContextKey = "profile"
	spaceContextKey   = "space"
)

// Claims represents the authorization claims transmitted via a JWT.
// Tokens are issued by the identity provider; this API only verifies them.
type Claims struct {
	jwt.StandardClaims
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"picture,omitempty"`
}

// newJWTConfig is the JWT auth middleware config; verification only.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		Claims:        new(Claims),
	}
}

// GetProfileClaims builds the claims the identity provider would transmit
// for prof. Used by tests and the admin CLI.
func GetProfileClaims(prof profile.Profile, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   prof.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:      prof.Name,
		Email:     prof.Email,
		AvatarURL: prof.AvatarURL,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextProfile(ctx echo.Context) (profile.Profile, error) {
	if prof, ok := ctx.Get(profileContextKey).(profile.Profile); ok {
		return prof, nil
	}
	return profile.Profile{}, errUnauthorized
}

func getContextMember(ctx echo.Context) (space.Member, error) {
	prof, err := getContextProfile(ctx)
	if err != nil {
		return space.Member{}, err
	}
	return space.Member{
		ID:        prof.ID,
		Name:      prof.Name,
		Email:     prof.Email,
		AvatarURL: prof.AvatarURL,
	}, nil
}

// profileSyncMiddleware upserts the identity-provider account as a local
// Profile on every authenticated request, so names and avatars stay fresh.
func profileSyncMiddleware(svc profile.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}

			prof, err := svc.Sync(profile.Profile{
				ID:        claims.Subject,
				Name:      claims.Name,
				Email:     claims.Email,
				AvatarURL: claims.AvatarURL,
			})
			if err != nil {
				return errors.Wrap(err, "syncing profile")
			}
			ctx.Set(profileContextKey, prof)
			return next(ctx)
		}
	}
}

// spaceMemberMiddleware resolves the :id space and requires the caller to
// be one of its members. Outsiders get a 404, not a 403: a space's
// existence is itself member-only information.
func spaceMemberMiddleware(svc space.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			prof, err := getContextProfile(ctx)
			if err != nil {
				return err
			}

			sp, err := svc.Get(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == space.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding space by ID")
			}
			if !sp.HasMember(prof.ID) {
				return errHttpNotFound
			}

			ctx.Set(spaceContextKey, sp)
			return next(ctx)
		}
	}
}

func getContextSpace(ctx echo.Context) (space.Space, error) {
	if sp, ok := ctx.Get(spaceContextKey).(space.Space); ok {
		return sp, nil
	}
	return space.Space{}, errHttpNotFound
}
