package skill

// budgets holds the question count per tier (Easy, Normal, Hard) for each skill.
// Every per-skill budget fits inside that skill's keyspace, so a standalone
// test always issues exactly its budget.
var budgets = map[ID][3]int{
	Counting:   {8, 10, 12},
	Comparison: {8, 12, 16},
	Matching:   {8, 10, 12},
	Sequences:  {8, 10, 12},
	Arithmetic: {10, 15, 20},
	Estimate:   {8, 12, 16},
	Fractions:  {8, 10, 12},
	Coins:      {8, 10, 12},
	Final:      {20, 30, 40},
}

// Budget returns the number of questions in a session of skill id at tier.
// Unknown tiers use the Easy budget. Unknown skills have no budget.
func Budget(id ID, tier Tier) int {
	b, ok := budgets[id]
	if !ok {
		return 0
	}
	if !tier.valid() {
		tier = TierEasy
	}
	return b[tier]
}
