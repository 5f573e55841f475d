package app

import (
	"context"
	"errors"
	"fmt"
)

// Taxonomie des erreurs remontées par la source distante.
//
// ConnectivityError et ServerError autorisent le repli sur le cache local;
// APIError (4xx) est considérée permanente et remonte telle quelle.
// L'annulation coopérative (context.Canceled) n'est jamais enveloppée.

type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("remote unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.Status)
}

type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}

// wrapTransportError classe une erreur de transport (DNS, refus de connexion,
// timeout). context.Canceled repart intact; un DeadlineExceeded est traité
// comme un timeout, donc une erreur de connectivité.
func wrapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ConnectivityError{Err: err}
}

func statusToError(status int) error {
	if status >= 500 {
		return &ServerError{Status: status}
	}
	return &APIError{Status: status}
}

// canServeFromCache dit si l'échec distant autorise le repli sur le cache.
func canServeFromCache(err error) bool {
	var ce *ConnectivityError
	var se *ServerError
	return errors.As(err, &ce) || errors.As(err, &se)
}
