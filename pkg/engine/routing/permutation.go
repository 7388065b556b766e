package routing

// nextPermutation. rearranges p into the next permutation in lexicographic order, false once p
// is the last one (p is left unchanged then).
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// visitOrders. every visiting order of n waypoints with the first and last fixed, interior
// waypoints permuted in lexicographic order.
func visitOrders(n int) [][]int {
	if n < 2 {
		return nil
	}

	interior := make([]int, 0, n-2)
	for i := 1; i < n-1; i++ {
		interior = append(interior, i)
	}

	orders := make([][]int, 0)
	for {
		order := make([]int, 0, n)
		order = append(order, 0)
		order = append(order, interior...)
		order = append(order, n-1)
		orders = append(orders, order)

		if !nextPermutation(interior) {
			break
		}
	}
	return orders
}
