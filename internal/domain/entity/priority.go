package entity

import "sort"

// ExcludeSentinel is the priority assigned to unrecognized blockchains.
// Balances resolving to it (or below) never reach the output.
const ExcludeSentinel = -99

// DefaultBlockchainPriorities is the ranking used when no override is configured.
var DefaultBlockchainPriorities = map[string]int{
	"Osmosis":  100,
	"Ethereum": 50,
	"Arbitrum": 30,
	"Neo":      20,
	"Zilliqa":  10,
}

// PriorityPolicy is an immutable blockchain -> priority mapping.
type PriorityPolicy struct {
	priorities map[string]int
}

// NewPriorityPolicy copies priorities into a new policy.
func NewPriorityPolicy(priorities map[string]int) PriorityPolicy {
	copied := make(map[string]int, len(priorities))
	for blockchain, priority := range priorities {
		copied[blockchain] = priority
	}
	return PriorityPolicy{priorities: copied}
}

// DefaultPriorityPolicy returns a policy built from DefaultBlockchainPriorities.
func DefaultPriorityPolicy() PriorityPolicy {
	return NewPriorityPolicy(DefaultBlockchainPriorities)
}

// Priority returns the rank of blockchain, or ExcludeSentinel when it is unknown.
func (p PriorityPolicy) Priority(blockchain string) int {
	if priority, ok := p.priorities[blockchain]; ok {
		return priority
	}
	return ExcludeSentinel
}

// Includes reports whether balances on blockchain are eligible for display.
func (p PriorityPolicy) Includes(blockchain string) bool {
	return p.Priority(blockchain) > ExcludeSentinel
}

// BlockchainPriority is one entry of a policy listing.
type BlockchainPriority struct {
	Blockchain string `json:"blockchain"`
	Priority   int    `json:"priority"`
}

// Entries lists the policy ordered by descending priority, then by name.
func (p PriorityPolicy) Entries() []BlockchainPriority {
	entries := make([]BlockchainPriority, 0, len(p.priorities))
	for blockchain, priority := range p.priorities {
		entries = append(entries, BlockchainPriority{Blockchain: blockchain, Priority: priority})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Blockchain < entries[j].Blockchain
	})
	return entries
}
