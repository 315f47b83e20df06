// Package knn calcula los vecinos por coseno de cada fila de la matriz
// título x usuario (búsqueda exacta por fuerza bruta sobre vectores dispersos).
package knn

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sadieom/BiblioMatch/internal/matrix"
)

const (
	DefaultK = 5
	Metric   = "cosine"
)

type Options struct {
	// K vecinos por fila, sin contar la propia fila.
	K int
	// Workers goroutines; cada una procesa las filas idx % Workers == id.
	Workers int
}

// Neighbor es un vecino de una fila con su similitud coseno.
type Neighbor struct {
	Row        int
	Similarity float64
}

// Distance devuelve la distancia coseno (1 - similitud).
func (n Neighbor) Distance() float64 { return 1 - n.Similarity }

// Index son los K vecinos precalculados de cada fila.
type Index struct {
	K         int
	Neighbors [][]Neighbor
}

// Of devuelve los vecinos de la fila i ordenados de más a menos similar.
func (ix *Index) Of(i int) []Neighbor {
	if i < 0 || i >= len(ix.Neighbors) {
		return nil
	}
	return ix.Neighbors[i]
}

// Fit calcula el índice completo. Con menos de K filas solapadas se completa
// con filas sin usuarios en común (distancia 1) en orden de fila.
func Fit(ctx context.Context, m *matrix.Matrix, opts Options) (*Index, error) {
	if opts.K <= 0 {
		opts.K = DefaultK
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	rows, _ := m.Shape()
	ix := &Index{K: opts.K, Neighbors: make([][]Neighbor, rows)}
	if rows == 0 {
		return ix, nil
	}
	if opts.Workers > rows {
		opts.Workers = rows
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		shard := w
		g.Go(func() error {
			acc := make([]float64, rows)
			mark := make([]bool, rows)
			touched := make([]int, 0, 256)
			for n, i := 0, shard; i < rows; n, i = n+1, i+opts.Workers {
				if n%64 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				ix.Neighbors[i] = neighborsOf(m, i, opts.K, acc, mark, touched[:0])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ix, nil
}

// neighborsOf acumula los productos punto de la fila i contra todas las filas
// que comparten algún usuario y se queda con las k mejores. mark indica qué
// filas ya están en touched: un acumulado parcial puede valer 0 con ratings
// negativos.
func neighborsOf(m *matrix.Matrix, i, k int, acc []float64, mark []bool, touched []int) []Neighbor {
	for _, e := range m.Row(i) {
		for _, o := range m.Column(e.Col) {
			if o.Col == i {
				continue
			}
			if !mark[o.Col] {
				mark[o.Col] = true
				touched = append(touched, o.Col)
			}
			acc[o.Col] += e.Value * o.Value
		}
	}

	ni := m.Norm(i)
	cands := make([]Neighbor, 0, len(touched))
	for _, j := range touched {
		sim := 0.0
		if nj := m.Norm(j); ni > 0 && nj > 0 {
			sim = acc[j] / (ni * nj)
		}
		cands = append(cands, Neighbor{Row: j, Similarity: sim})
		acc[j] = 0
		mark[j] = false
	}

	sort.Slice(cands, func(a, b int) bool {
		if cands[a].Similarity != cands[b].Similarity {
			return cands[a].Similarity > cands[b].Similarity
		}
		return cands[a].Row < cands[b].Row
	})
	if len(cands) > k {
		return cands[:k]
	}

	// completar con filas sin solapamiento
	rows, _ := m.Shape()
	seen := make(map[int]struct{}, len(cands))
	for _, c := range cands {
		seen[c.Row] = struct{}{}
	}
	for j := 0; j < rows && len(cands) < k; j++ {
		if j == i {
			continue
		}
		if _, ok := seen[j]; ok {
			continue
		}
		cands = append(cands, Neighbor{Row: j, Similarity: 0})
	}
	return cands
}
