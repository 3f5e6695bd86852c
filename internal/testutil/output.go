// Package testutil provides fakes and builders shared by package tests.
package testutil

import (
	"fmt"
	"strings"
)

// Output builds backend output text in the format the disk backend prints.
type Output struct {
	b strings.Builder
}

// NewOutput creates an empty output builder.
func NewOutput() *Output {
	return &Output{}
}

// Mkdisk appends a disk creation block.
func (o *Output) Mkdisk(path, size string) *Output {
	return o.Line("MKDISK: Disco creado exitosamente").
		Line("-> Path: " + path).
		Line("-> Tamaño: " + size)
}

// Rmdisk appends a disk removal confirmation with the path on its own line.
func (o *Output) Rmdisk(path string) *Output {
	return o.Line("RMDISK: Disco eliminado correctamente").Line("-> Path: " + path)
}

// Fdisk appends a partition creation block. kind may be empty.
func (o *Output) Fdisk(kind, name, size string) *Output {
	label := "FDISK: Partición "
	if kind != "" {
		label += kind + " "
	}
	return o.Line(fmt.Sprintf("%s'%s' creada exitosamente", label, name)).
		Line("-> Tamaño: " + size)
}

// Mkdir appends a directory creation block.
func (o *Output) Mkdir(path string) *Output {
	return o.Line("MKDIR: Directorio creado exitosamente").Line(path)
}

// Mkfile appends a file creation block.
func (o *Output) Mkfile(path string) *Output {
	return o.Line("MKFILE: Archivo creado exitosamente").Line("-> Path: " + path)
}

// Remove appends a removal confirmation.
func (o *Output) Remove(path string) *Output {
	return o.Line("REMOVE: Eliminado correctamente -> " + path)
}

// Rename appends a rename block.
func (o *Output) Rename(path, newName string) *Output {
	return o.Line("RENAME: Renombrado correctamente").
		Line("-> Path: " + path).
		Line("-> Nuevo nombre: " + newName)
}

// Move appends a move block.
func (o *Output) Move(from, to string) *Output {
	return o.Line("MOVE: Movido correctamente").
		Line("-> Origen: " + from).
		Line("-> Destino: " + to)
}

// Line appends a raw line.
func (o *Output) Line(s string) *Output {
	o.b.WriteString(s)
	o.b.WriteByte('\n')
	return o
}

// String returns the accumulated text.
func (o *Output) String() string {
	return o.b.String()
}
