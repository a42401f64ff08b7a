// Package cite locates facts in extracted pages and produces positional
// citations of the form "p.2 §3 (x:120, y:540)". Search runs through an
// ordered list of strategies with decreasing confidence: exact element
// match, normalized page-text match, then typed pattern variants for
// dates, amounts and durations. The first strategy that finds the fact
// wins.
package cite
