// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/pilosa/lidarclip/clip"
	"github.com/spf13/cobra"
)

// ClipMain is wrapped by NewClipCommand and only exported for testing purposes.
var ClipMain *clip.Main

// NewClipCommand returns a new cobra command wrapping ClipMain.
func NewClipCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ClipMain = clip.NewMain()
	ClipMain.Stdout, ClipMain.Stderr = stdout, stderr
	clipCommand := &cobra.Command{
		Use:   "clip",
		Short: "keep the points of a LiDAR listing which fall inside a site polygon",
		Long: `Clip reads a whitespace delimited LiDAR listing in chunks, drops the
points outside the bounding box of the site polygon, then drops the points
outside the polygon itself, and appends the rest to a comma separated subset
file. A '*' is printed for each chunk with points in the bounding box, a '+'
for each chunk with points in the polygon, and a '.' for every chunk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ClipMain.Run()
		},
	}
	err := commandeer.Flags(clipCommand.Flags(), ClipMain)
	if err != nil {
		panic(err)
	}
	return clipCommand
}

func init() {
	subcommandFns["clip"] = NewClipCommand
}
