package classifier

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/dataset"
)

// Forest defaults used by the CLI.
const (
	DefaultTrees = 150
	DefaultSeed  = 42
)

// RandomForest trains bagged CART trees with Gini impurity and majority vote.
// Each tree draws its bootstrap sample and feature subsets from its own RNG
// subsystem, so results depend only on Seed and the training data.
type RandomForest struct {
	Trees       int // number of trees; <= 0 means DefaultTrees
	MaxDepth    int // 0 = unlimited
	MinLeaf     int // minimum examples per leaf; <= 0 means 1
	MaxFeatures int // features tried per split; <= 0 means round(sqrt(n))
	Seed        int64
}

// NewRandomForest creates a RandomForest with the given tree count and seed.
func NewRandomForest(trees int, seed int64) *RandomForest {
	return &RandomForest{Trees: trees, Seed: seed}
}

// ForestModel is a trained RandomForest.
type ForestModel struct {
	columns []string
	classes []int // sorted distinct labels; vote index → label
	trees   []*node
}

// node is a decision tree node. Leaves have left == nil.
type node struct {
	feature   int
	threshold float64
	left      *node // x[feature] <= threshold
	right     *node
	class     int // index into classes, leaves only
}

// Fit trains the forest on m.
func (f *RandomForest) Fit(m *dataset.Matrix) (Model, error) {
	if m.Len() == 0 {
		return nil, ErrEmptyTrainingSet
	}
	width := len(m.Columns)
	if err := checkWidth(m.X, width); err != nil {
		return nil, err
	}
	if len(m.Y) != m.Len() {
		return nil, ErrMissingLabels
	}

	classes, labels := indexClasses(m.Y)
	trees := f.Trees
	if trees <= 0 {
		trees = DefaultTrees
	}
	b := &builder{
		X:           m.X,
		y:           labels,
		nClasses:    len(classes),
		maxDepth:    f.MaxDepth,
		minLeaf:     max(f.MinLeaf, 1),
		maxFeatures: f.MaxFeatures,
	}
	if b.maxFeatures <= 0 || b.maxFeatures > width {
		b.maxFeatures = max(1, int(math.Round(math.Sqrt(float64(width)))))
	}

	rngs := sim.NewPartitionedRNG(sim.NewSimulationKey(f.Seed))
	model := &ForestModel{
		columns: append([]string(nil), m.Columns...),
		classes: classes,
		trees:   make([]*node, trees),
	}
	n := m.Len()
	for t := 0; t < trees; t++ {
		b.rng = rngs.ForSubsystem(sim.SubsystemTree(t))
		sample := make([]int, n)
		for i := range sample {
			sample[i] = b.rng.Intn(n)
		}
		model.trees[t] = b.grow(sample, 0)
	}
	logrus.Debugf("trained random forest: %d trees, %d examples, %d features, %d classes", trees, n, width, len(classes))
	return model, nil
}

// Columns returns the training column order.
func (m *ForestModel) Columns() []string { return m.columns }

// Predict returns the majority-vote label for each row. Vote ties go to the
// smallest label.
func (m *ForestModel) Predict(X [][]float64) ([]int, error) {
	if err := checkWidth(X, len(m.columns)); err != nil {
		return nil, err
	}
	out := make([]int, len(X))
	votes := make([]float64, len(m.classes))
	for i, x := range X {
		for k := range votes {
			votes[k] = 0
		}
		for _, t := range m.trees {
			votes[t.classify(x)]++
		}
		out[i] = m.classes[floats.MaxIdx(votes)]
	}
	return out, nil
}

func (n *node) classify(x []float64) int {
	for n.left != nil {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.class
}

// indexClasses maps labels to dense indices over the sorted distinct labels.
func indexClasses(y []int) (classes, labels []int) {
	seen := make(map[int]bool)
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Ints(classes)
	pos := make(map[int]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	labels = make([]int, len(y))
	for i, v := range y {
		labels[i] = pos[v]
	}
	return classes, labels
}

// builder grows one tree at a time over shared training data.
type builder struct {
	X           [][]float64
	y           []int
	nClasses    int
	maxDepth    int
	minLeaf     int
	maxFeatures int
	rng         *rand.Rand
}

func (b *builder) counts(idx []int) []float64 {
	c := make([]float64, b.nClasses)
	for _, i := range idx {
		c[b.y[i]]++
	}
	return c
}

func (b *builder) leaf(counts []float64) *node {
	return &node{class: floats.MaxIdx(counts)}
}

func (b *builder) grow(idx []int, depth int) *node {
	counts := b.counts(idx)
	if gini(counts) == 0 || len(idx) < 2*b.minLeaf || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return b.leaf(counts)
	}

	width := len(b.X[0])
	candidates := b.rng.Perm(width)[:b.maxFeatures]
	bestFeature, bestThreshold, bestScore := -1, 0.0, gini(counts)
	for _, f := range candidates {
		if thr, score, ok := b.bestSplit(idx, f, counts); ok && score < bestScore {
			bestFeature, bestThreshold, bestScore = f, thr, score
		}
	}
	if bestFeature < 0 {
		return b.leaf(counts)
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &node{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}

// bestSplit finds the threshold on feature f minimizing weighted Gini impurity.
// Thresholds are midpoints between consecutive distinct values.
func (b *builder) bestSplit(idx []int, f int, total []float64) (threshold, score float64, ok bool) {
	sorted := append([]int(nil), idx...)
	sort.SliceStable(sorted, func(i, j int) bool { return b.X[sorted[i]][f] < b.X[sorted[j]][f] })

	n := float64(len(sorted))
	left := make([]float64, b.nClasses)
	right := append([]float64(nil), total...)
	score = math.Inf(1)
	for k := 0; k < len(sorted)-1; k++ {
		c := b.y[sorted[k]]
		left[c]++
		right[c]--
		cur, next := b.X[sorted[k]][f], b.X[sorted[k+1]][f]
		if cur == next || k+1 < b.minLeaf || len(sorted)-k-1 < b.minLeaf {
			continue
		}
		nl := float64(k + 1)
		s := (nl*gini(left) + (n-nl)*gini(right)) / n
		if s < score {
			threshold, score, ok = (cur+next)/2, s, true
		}
	}
	return threshold, score, ok
}

// gini returns 1 - Σp² for class counts.
func gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}
	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/total, counts)
	return 1 - floats.Dot(p, p)
}
