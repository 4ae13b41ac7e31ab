package service

import (
	"fmt"

	"github.com/ilgaz/tempo/internal/store"
)

// Group is an ordered bucket of items sharing a grouping key.
type Group[T any] struct {
	Key   string
	Items []T
}

// GroupBy partitions items by key, preserving the order in which each key
// is first seen. Items within a group keep their input order.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// TotalMinutes sums the recorded duration of a set of tasks.
func TotalMinutes(tasks []store.Task) int {
	total := 0
	for _, t := range tasks {
		total += t.TotalMinutes
	}
	return total
}

// FormatMinutes renders a minute total as whole hours plus remainder,
// e.g. 205 -> "3h 25m".
func FormatMinutes(total int) string {
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
