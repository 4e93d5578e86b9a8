// Package render draws the dependency graph as a PNG.
//
// Nodes are placed at the positions declared in the model, not by a layout
// algorithm. The picture is a go-chart chart with hidden axes: a dot series
// for the nodes, one line series per edge plus its arrowhead, and an
// annotation series for the labels. A caption is stamped afterwards with a
// bitmap font.
package render
