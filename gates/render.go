// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

import (
	"bytes"
	"io"
	"os"

	"github.com/db47h/seqsynth/logic"
	"github.com/pkg/errors"
)

// A Renderer draws a Network as an image.
//
type Renderer interface {
	// Ext returns the file name extension of rendered images, without the
	// leading dot.
	Ext() string
	// Render writes the image of n to w.
	Render(w io.Writer, n *Network) error
}

// Render returns the image of n as rendered by r.
//
func Render(r Renderer, n *Network) ([]byte, error) {
	var b bytes.Buffer
	if err := r.Render(&b, n); err != nil {
		return nil, errors.Wrapf(err, "render %s", n.Name)
	}
	return b.Bytes(), nil
}

// RenderExpr returns the image of the gate network computing signal name
// from e.
//
func RenderExpr(r Renderer, e logic.Expr, name string) ([]byte, error) {
	return Render(r, Build(name, e))
}

// RenderFile draws the gate network computing signal name from e into the
// file at path.
//
func RenderFile(r Renderer, e logic.Expr, name, path string) error {
	data, err := RenderExpr(r, e, name)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "render %s", name)
	}
	return nil
}

// ParseRenderer returns the renderer for the given format name: "svg" or
// "dot".
//
func ParseRenderer(format string) (Renderer, error) {
	switch format {
	case "svg", "SVG":
		return SVG{}, nil
	case "dot", "DOT", "gv":
		return DOT{}, nil
	}
	return nil, errors.Errorf("unknown image format %q", format)
}

// column returns the drawing column of node kind k, from left to right.
func column(k Kind) int {
	switch k {
	case Not:
		return 1
	case And:
		return 2
	case Or:
		return 3
	}
	return 0
}
