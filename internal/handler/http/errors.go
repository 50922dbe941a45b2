// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Messages of the 401 responses written by the auth middleware.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

// errInvalidJSON is reported for any register or login body that cannot be
// decoded into credentials.
var errInvalidJSON = errors.New("invalid JSON body")
