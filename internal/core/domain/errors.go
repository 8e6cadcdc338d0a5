package domain

import "errors"

// Usuario errors
var (
	ErrUsuarioNotFound    = errors.New("usuario not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidRol         = errors.New("invalid rol")
)

// Oferta errors
var (
	ErrOfertaNotFound      = errors.New("oferta not found")
	ErrNotOfertaOwner      = errors.New("oferta belongs to another vendedor")
	ErrOfertaNotEditable   = errors.New("oferta is not PENDIENTE")
	ErrInvalidEstado       = errors.New("invalid estado")
	ErrTransitionForbidden = errors.New("estado transition not allowed")
)
