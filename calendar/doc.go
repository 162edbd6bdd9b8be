// Package calendar produces trading-day sequences for a fixed set of major
// exchanges and derives weekly/monthly date axes from them.
//
// Trading days are computed from per-exchange holiday rules over a Mon-Fri
// trading week. The weekly and monthly reductions are single forward passes
// over the sorted daily sequence comparing adjacent elements, because
// exchange holiday patterns make naive week/month date arithmetic wrong.
package calendar
