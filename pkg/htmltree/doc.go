// Package htmltree imports HTML markup into VNode trees.
//
// It is the inverse of pkg/render for element and text content: identity
// the renderer embedded in data-vid attributes and <!--vid:x--> markers is
// recovered, handler attributes come back as handlers, and anything the
// markup left anonymous is assigned a fresh identity so the tree is
// immediately usable with Align and Diff.
package htmltree
