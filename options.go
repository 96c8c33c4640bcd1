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

import "github.com/pbfstream/osmpbf/internal/core"

// cursorOptions provides optional configuration parameters for Cursor
// construction.
type cursorOptions struct {
	bufferPoolCapacity int
}

// CursorOption configures how a Cursor is constructed.
type CursorOption func(*cursorOptions)

// WithBufferPoolCapacity lets you size the Cursor's decompression Buffer
// Pool; the default is core.DefaultPoolCapacity.
func WithBufferPoolCapacity(n int) CursorOption {
	return func(o *cursorOptions) {
		o.bufferPoolCapacity = n
	}
}

var defaultCursorOptions = cursorOptions{
	bufferPoolCapacity: core.DefaultPoolCapacity,
}
