package runtime

// longestIncreasingSubsequence returns the indices of a longest strictly
// increasing subsequence of arr, ignoring zeros (zeros mark newly mounted
// nodes with no previous position). Patience-sorting variant with
// predecessor links: O(n log n).
func longestIncreasingSubsequence(arr []int) []int {
	prev := make([]int, len(arr))
	// result holds indices into arr of the current best tails.
	var result []int

	for i, v := range arr {
		if v == 0 {
			continue
		}
		if len(result) == 0 || arr[result[len(result)-1]] < v {
			if len(result) > 0 {
				prev[i] = result[len(result)-1]
			} else {
				prev[i] = -1
			}
			result = append(result, i)
			continue
		}
		// Binary search for the leftmost tail >= v and replace it.
		lo, hi := 0, len(result)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if arr[result[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if arr[result[lo]] > v {
			if lo > 0 {
				prev[i] = result[lo-1]
			} else {
				prev[i] = -1
			}
			result[lo] = i
		}
	}

	// Walk the predecessor chain from the last tail.
	out := make([]int, len(result))
	if len(result) == 0 {
		return out
	}
	k := result[len(result)-1]
	for i := len(result) - 1; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
