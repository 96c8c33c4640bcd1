// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"errors"
	"fmt"
)

// The closed error taxonomy's sentinels. I/O and protobuf decode failures
// are not among them: those are surfaced wrapping io.ErrUnexpectedEOF or
// the wire parser's own error.
var (
	ErrBlobHeaderTooLarge  = errors.New("osmpbf: blob header exceeds 64 KiB")
	ErrBlobDataTooLarge    = errors.New("osmpbf: blob data exceeds 32 MiB")
	ErrUnsupportedEncoding = errors.New("osmpbf: unsupported blob compression encoding")
	ErrUnexpectedBlobType  = errors.New("osmpbf: unexpected blob type")
	ErrInvalidUTF8         = errors.New("osmpbf: string table entry is not valid UTF-8")
)

// UnexpectedBlobTypeError reports the offending blob type string when a
// Cursor expected OSMHeader or OSMData and got something else.
type UnexpectedBlobTypeError struct {
	Got string
}

func (e *UnexpectedBlobTypeError) Error() string {
	return fmt.Sprintf("osmpbf: unexpected blob type %q", e.Got)
}

func (e *UnexpectedBlobTypeError) Unwrap() error {
	return ErrUnexpectedBlobType
}
