// Package http exposes the cronograma operations as a JSON API: scheduling
// and editing aulas, the UC and turma catalogs, holiday management and the
// printable month grid with its iCalendar export.
package http
