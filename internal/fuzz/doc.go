// Package fuzztests houses Go fuzz harnesses for the parse pipeline
// (source -> lexer -> parser) and the position mapper. The harnesses
// guard against panics and hangs on arbitrary editor buffers.
//
// Не делает: генерацию корпусов и запись файлов.
package fuzztests
