// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package binaryop

import "github.com/pkg/errors"

// ErrAllocation is returned when the output Mat's backing allocation fails,
// the Go-error analog of original_source's -100 return code.
var ErrAllocation = errors.New("binaryop: output allocation failed")
