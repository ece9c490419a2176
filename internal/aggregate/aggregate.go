// Package aggregate accumulates file counts and byte totals per group and
// across a run.
package aggregate

import "fmt"

// Totals is a file count and byte sum.
type Totals struct {
	Files int
	Bytes int64
}

// Add folds o into t.
func (t *Totals) Add(o Totals) {
	t.Files += o.Files
	t.Bytes += o.Bytes
}

func (t Totals) String() string {
	return fmt.Sprintf("%d files, %s", t.Files, FormatBytes(t.Bytes))
}

// Aggregator tracks the open group and the grand total. Groups that end
// with no records do not count toward Groups.
type Aggregator struct {
	current Totals
	grand   Totals
	groups  int
	open    bool
}

// BeginGroup resets the per-group totals.
func (a *Aggregator) BeginGroup() {
	a.current = Totals{}
	a.open = true
}

// Record counts one entry of the open group.
func (a *Aggregator) Record(size int64) {
	a.current.Files++
	a.current.Bytes += size
}

// EndGroup closes the open group, folds it into the grand total and
// returns it.
func (a *Aggregator) EndGroup() Totals {
	t := a.current
	if a.open && t.Files > 0 {
		a.grand.Add(t)
		a.groups++
	}
	a.current = Totals{}
	a.open = false
	return t
}

// GrandTotal returns the totals of every closed group.
func (a *Aggregator) GrandTotal() Totals {
	return a.grand
}

// Groups returns the number of non-empty groups closed so far.
func (a *Aggregator) Groups() int {
	return a.groups
}

var byteUnits = []string{"Kbytes", "Mbytes", "Gbytes", "Tbytes", "Pbytes"}

// FormatBytes renders n as "849 bytes", or with a scaled figure for n of
// 1024 and up: "1500 bytes (1.46 Kbytes)".
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d bytes", n)
	}
	f := float64(n)
	unit := -1
	for f >= 1024 && unit+1 < len(byteUnits) {
		f /= 1024
		unit++
	}
	return fmt.Sprintf("%d bytes (%.2f %s)", n, f, byteUnits[unit])
}
