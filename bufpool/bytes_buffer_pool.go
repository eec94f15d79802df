//     Copyright (C) 2020, IrineSistiana
//
//     This file is part of tldcheck.
//
//     tldcheck is free software: you can redistribute it and/or modify
//     it under the terms of the GNU General Public License as published by
//     the Free Software Foundation, either version 3 of the License, or
//     (at your option) any later version.
//
//     tldcheck is distributed in the hope that it will be useful,
//     but WITHOUT ANY WARRANTY; without even the implied warranty of
//     MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//     GNU General Public License for more details.
//
//     You should have received a copy of the GNU General Public License
//     along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bufpool

import (
	"bytes"
	"sync"
)

// buffers that grew larger than this are dropped instead of pooled
const maxPooledBufSize = 64 << 10

var bytesBufPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// AcquireBytesBuf returns an empty buffer from the pool.
func AcquireBytesBuf() *bytes.Buffer {
	return bytesBufPool.Get().(*bytes.Buffer)
}

// ReleaseBytesBuf resets buf and puts it back. buf must not be used
// after this call.
func ReleaseBytesBuf(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufSize {
		return
	}
	buf.Reset()
	bytesBufPool.Put(buf)
}
