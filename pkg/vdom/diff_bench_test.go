package vdom

import (
	"fmt"
	"math/rand"
	"testing"
)

func benchLists(n int, mutate func(r *rand.Rand, children []*VNode)) (*VNode, *VNode) {
	r := rand.New(rand.NewSource(42))
	old := keyedList("1", n)
	next := keyedList("1", n)
	mutate(r, next.Children)
	return old, next
}

func BenchmarkDiffKeyed(b *testing.B) {
	mutations := []struct {
		name   string
		mutate func(r *rand.Rand, children []*VNode)
	}{
		{"swap", func(r *rand.Rand, c []*VNode) {
			c[0], c[len(c)-1] = c[len(c)-1], c[0]
		}},
		{"reverse", func(r *rand.Rand, c []*VNode) {
			for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
				c[i], c[j] = c[j], c[i]
			}
		}},
		{"shuffle", func(r *rand.Rand, c []*VNode) {
			r.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
		}},
		{"identical", func(r *rand.Rand, c []*VNode) {}},
	}

	for _, m := range mutations {
		for _, n := range []int{100, 1000} {
			old, next := benchLists(n, m.mutate)
			b.Run(fmt.Sprintf("%s/n=%d", m.name, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					Diff(old, next)
				}
			})
		}
	}
}

func BenchmarkDiffBatched(b *testing.B) {
	old := keyedList("1", 100)
	next := keyedList("1", 200)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		DiffBatched(old, next)
	}
}

func BenchmarkAlign(b *testing.B) {
	prev := keyedList("1", 1000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		next := keyedList("1", 1000)
		Align(prev, next)
	}
}
