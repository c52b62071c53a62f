package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/pkg/jwt"
)

// AdminSubject subject de los tokens del panel: hay un único administrador.
const AdminSubject = "shop-admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminGate desbloquea el panel de administración comparando el passcode compartido
// y emite el token que exigen las rutas protegidas.
type AdminGate struct {
	jwtCfg JWTConfig
}

// NewAdminGate construye el caso de uso.
func NewAdminGate(jwtCfg JWTConfig) *AdminGate {
	return &AdminGate{jwtCfg: jwtCfg}
}

// Unlock compara given con el passcode vigente. Si coincide devuelve un token con rol admin;
// si no, domain.ErrWrongPasscode.
func (g *AdminGate) Unlock(expected, given string) (*dto.UnlockResponse, error) {
	if given == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
		return nil, domain.ErrWrongPasscode
	}
	token, err := jwt.Generate(g.jwtCfg.Secret, AdminSubject, jwt.RoleAdmin, g.jwtCfg.Issuer, g.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: emitir token: %w", err)
	}
	return &dto.UnlockResponse{Token: token}, nil
}

// Verify valida un token emitido por Unlock. Devuelve domain.ErrUnauthorized si no sirve.
func (g *AdminGate) Verify(token string) error {
	_, role, err := jwt.Parse(g.jwtCfg.Secret, token)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if role != jwt.RoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}
