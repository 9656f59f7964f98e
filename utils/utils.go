package utils

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Luismorlan/logosarena/utils/dotenv"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString returns a lower case string of length n.
func RandomAlphabetString(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[seededRand.Intn(len(alphabet))])
	}
	return sb.String()
}

func IsProdEnv() bool {
	return dotenv.Env() == dotenv.ProdEnv
}

// UniqueStrings returns strs without duplicates, keeping the first occurrence.
func UniqueStrings(strs []string) []string {
	seen := make(map[string]bool, len(strs))
	res := []string{}
	for _, s := range strs {
		if seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, s)
	}
	return res
}
