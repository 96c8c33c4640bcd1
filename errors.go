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

package pbf

import "github.com/pbfstream/osmpbf/model"

// The closed error taxonomy a Cursor can surface. Every one of these is a
// sentinel (or wraps one); test with errors.Is, not string comparison.
var (
	ErrBlobHeaderTooLarge  = model.ErrBlobHeaderTooLarge
	ErrBlobDataTooLarge    = model.ErrBlobDataTooLarge
	ErrUnsupportedEncoding = model.ErrUnsupportedEncoding
	ErrUnexpectedBlobType  = model.ErrUnexpectedBlobType
	ErrInvalidUTF8         = model.ErrInvalidUTF8
)

// UnexpectedBlobTypeError reports the offending blob type string; returned
// by Cursor.Header when the first frame is not OSMHeader. Cursor.Next skips
// non-OSMData frames and never returns it.
type UnexpectedBlobTypeError = model.UnexpectedBlobTypeError
