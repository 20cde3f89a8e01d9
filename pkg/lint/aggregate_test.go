package lint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

func span(l1, c1, l2, c2 int) token.Span {
	return token.Span{
		Start: token.Position{Line: l1, Column: c1},
		End:   token.Position{Line: l2, Column: c2},
	}
}

func finding(rule string, s token.Span) Finding {
	return Finding{RuleName: rule, Severity: core.SeverityWarning, Span: s, Message: rule}
}

func TestAggregateDeduplicates(t *testing.T) {
	in := []Finding{
		finding("eq_op", span(3, 5, 3, 10)),
		finding("eq_op", span(3, 5, 3, 10)),
		finding("len_zero", span(3, 5, 3, 10)),
		finding("eq_op", span(3, 5, 3, 12)),
	}

	out := Aggregate(in)
	assert.Len(t, out, 3)
	assert.Len(t, in, 4, "input untouched")
}

func TestAggregateOrder(t *testing.T) {
	in := []Finding{
		finding("zeta", span(2, 1, 2, 4)),
		finding("alpha", span(10, 1, 10, 2)),
		finding("beta", span(2, 1, 2, 4)),
		finding("alpha", span(2, 8, 2, 9)),
		finding("alpha", span(1, 20, 1, 22)),
		finding("beta", span(2, 1, 2, 2)),
	}

	out := Aggregate(in)
	var got []string
	for _, f := range out {
		got = append(got, f.RuleName+"@"+f.Span.String())
	}
	assert.Equal(t, []string{
		"alpha@1:20-1:22",
		"beta@2:1-2:2",
		"beta@2:1-2:4",
		"zeta@2:1-2:4",
		"alpha@2:8-2:9",
		"alpha@10:1-10:2",
	}, got)
}

func TestAggregateDeterministic(t *testing.T) {
	base := []Finding{
		finding("a", span(1, 1, 1, 5)),
		finding("b", span(1, 1, 1, 5)),
		{RuleName: "a", Span: span(1, 1, 1, 5), Message: "other"},
		finding("c", span(4, 2, 6, 1)),
		finding("a", span(4, 2, 4, 3)),
	}
	want := Aggregate(base)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Finding(nil), base...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Aggregate(shuffled)
		assert.Equal(t, len(want), len(got))
		for k := range want {
			assert.Equal(t, want[k].RuleName, got[k].RuleName)
			assert.Equal(t, want[k].Span, got[k].Span)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
