package util

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/bareebaree/transmuseTATE/constants"
)

// GatherScorePaths walks root for score files. maxNum of 0 means no limit.
// Traversal is WalkDir's lexical order, stable for a fixed snapshot.
func GatherScorePaths(root string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() && hasScoreExt(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(root, walk)
	return res
}

func hasScoreExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range constants.ScoreExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// GatherTokenPaths finds the persisted per-file token outputs under root.
func GatherTokenPaths(root string) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() && strings.HasSuffix(s, constants.TokenFileSuffix) {
			res = append(res, s)
		}
		return nil
	}
	filepath.WalkDir(root, walk)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
