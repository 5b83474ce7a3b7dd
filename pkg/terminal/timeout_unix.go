//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// setReadTimeout makes reads return after a tenth of a second without input.
// VMIN: minimum number of bytes for a read
// VTIME: read timeout in deciseconds
func setReadTimeout(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 1
	return unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
}
