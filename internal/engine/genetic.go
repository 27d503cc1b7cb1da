package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/CrateStack/internal/model"
)

// GeneticConfig holds parameters for the genetic algorithm packer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// gene represents a single item placement decision in the chromosome.
type gene struct {
	itemIndex int            // Index into the expanded items slice
	rotation  model.Rotation // Orientation to try first for this item
}

// chromosome represents a candidate solution: an ordering of items with
// preferred orientations.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticPacker implements the genetic algorithm for pack optimization.
type geneticPacker struct {
	settings model.PackSettings
	config   GeneticConfig
	items    []model.Item
	bins     []model.Bin
	rng      *rand.Rand
}

// newGeneticPacker creates a new genetic packer instance.
func newGeneticPacker(settings model.PackSettings, config GeneticConfig, items []model.Item, bins []model.Bin, seed int64) *geneticPacker {
	return &geneticPacker{
		settings: settings,
		config:   config,
		items:    items,
		bins:     bins,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// pack runs the genetic algorithm and returns the best result.
func (g *geneticPacker) pack() model.PackResult {
	if len(g.items) == 0 || len(g.bins) == 0 {
		return model.PackResult{Unfitted: g.items}
	}

	// Initialize population
	population := g.initPopulation()

	// Evaluate initial population
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	// Evolution loop
	for gen := 0; gen < g.config.Generations; gen++ {
		// Sort by fitness descending (higher is better)
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		// Fill rest of population with offspring
		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)

			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	// Find best individual
	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})

	return g.decode(population[0])
}

// initPopulation creates the initial random population.
func (g *geneticPacker) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			rots := g.items[perm[j]].Rotations()
			genes[j] = gene{
				itemIndex: perm[j],
				rotation:  rots[g.rng.Intn(len(rots))],
			}
		}
		population[i] = chromosome{genes: genes}
	}

	// Also seed one chromosome with the greedy order (largest volume first)
	// to give the GA a good starting point
	if g.config.PopulationSize > 0 {
		greedy := g.createGreedyChromosome()
		population[0] = greedy
	}

	return population
}

// createGreedyChromosome creates a chromosome sorted by volume descending
// (mimics the greedy heuristic).
func (g *geneticPacker) createGreedyChromosome() chromosome {
	n := len(g.items)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.items[indices[i]].Volume() > g.items[indices[j]].Volume()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{itemIndex: idx, rotation: model.RotationWHD}
	}
	return chromosome{genes: genes}
}

// evaluate computes the fitness of a chromosome by decoding it into a
// packing and measuring volume efficiency.
func (g *geneticPacker) evaluate(c chromosome) float64 {
	result := g.decode(c)

	if len(result.Bins) == 0 {
		return 0
	}

	var usedVolume, totalVolume float64
	for _, b := range result.Bins {
		usedVolume += b.UsedVolume()
		totalVolume += b.TotalVolume()
	}

	if totalVolume == 0 {
		return 0
	}

	efficiency := usedVolume / totalVolume

	// Penalize unfitted items heavily
	unfittedPenalty := float64(len(result.Unfitted)) * 0.1
	// Penalize using more bins
	binPenalty := float64(len(result.Bins)-1) * 0.05

	fitness := efficiency - unfittedPenalty - binPenalty
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode converts a chromosome into an actual packing result using the
// anchor-point packer. Each item is offered to the bins in pool order with
// its preferred orientation tried first.
func (g *geneticPacker) decode(c chromosome) model.PackResult {
	packers := make([]*BinPacker, 0, len(g.bins))
	for _, b := range g.bins {
		packers = append(packers, NewBinPacker(b))
	}

	var unfitted []model.Item
	for _, gn := range c.genes {
		item := g.items[gn.itemIndex]
		rots := preferredOrder(item, gn.rotation)
		placed := false
		for _, bp := range packers {
			if _, err := bp.tryPlace(item, rots); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			unfitted = append(unfitted, item)
		}
	}

	return buildResult(packers, unfitted)
}

// preferredOrder returns the item's allowed orientations with the preferred
// one moved to the front. A preference the item does not allow is ignored.
func preferredOrder(item model.Item, preferred model.Rotation) []model.Rotation {
	rots := item.Rotations()
	if !item.AllowsRotation(preferred) {
		return rots
	}
	ordered := make([]model.Rotation, 0, len(rots))
	ordered = append(ordered, preferred)
	for _, r := range rots {
		if r != preferred {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticPacker) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticPacker) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	// Select two random crossover points
	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	// Copy segment from parent1
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].itemIndex] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.itemIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticPacker) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	// Swap mutation: swap two random genes' positions
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Orientation mutation: re-roll the preferred orientation of a random gene
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		rots := g.items[c.genes[i].itemIndex].Rotations()
		c.genes[i].rotation = rots[g.rng.Intn(len(rots))]
	}

	// Inversion mutation: reverse a small segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticPacker) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// PackGenetic runs the genetic algorithm packer. It expands items by
// quantity, then uses the GA to find a good ordering and orientation set.
// The random source is seeded with a fixed value so repeated runs over the
// same input produce the same layout.
func PackGenetic(settings model.PackSettings, items []model.Item, bins []model.Bin) model.PackResult {
	expanded := expandItems(items)
	pool := expandBins(bins)

	if len(expanded) == 0 {
		return model.PackResult{}
	}
	if len(pool) == 0 {
		return model.PackResult{Unfitted: expanded}
	}

	config := DefaultGeneticConfig()

	// Scale generations for larger problems
	if len(expanded) > 20 {
		config.Generations = 150
	}
	if len(expanded) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	ga := newGeneticPacker(settings, config, expanded, pool, 42)
	return ga.pack()
}
