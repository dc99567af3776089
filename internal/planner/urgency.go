// internal/planner/urgency.go
package planner

// Urgency scores how badly an item needs replenishment, 0 to 1.
//
//	stock == 0              -> 1.0 (critical)
//	stock <= minimum        -> 0.9 (high)
//	stock <= reorder point  -> 0.5..0.9, linear in the gap below the
//	                           reorder point
//	otherwise               -> 0.1 (low)
//
// The function is total: it tolerates items above the reorder point
// even though the planner filters those out.
func Urgency(currentStock, reorderPoint, minimumStock int) float64 {
	if currentStock == 0 {
		return 1.0
	}
	if currentStock <= minimumStock {
		return 0.9
	}
	if currentStock <= reorderPoint {
		span := reorderPoint - minimumStock
		if span < 1 {
			span = 1
		}
		ratio := float64(reorderPoint-currentStock) / float64(span)
		return 0.5 + 0.4*ratio
	}
	return 0.1
}
