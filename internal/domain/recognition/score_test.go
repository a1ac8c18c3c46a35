package recognition_test

import (
	"testing"

	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
	"github.com/stretchr/testify/require"
)

func musicIntent() intent.Intent {
	return intent.Intent{
		ID:       "i-music",
		Name:     "播放音乐",
		Keywords: []string{"播放", "音乐", "听歌"},
		Kind:     intent.KindCore,
		Status:   intent.StatusActive,
	}
}

func TestScore_Rules(t *testing.T) {
	tenKeywords := []string{"play", "k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9"}

	tests := []struct {
		name string
		text string
		rec  intent.Intent
		want float64
	}{
		{
			name: "exact name",
			text: "播放音乐",
			rec:  musicIntent(),
			want: 0.95,
		},
		{
			name: "exact after trim and case fold",
			text: "  Play Music ",
			rec:  intent.Intent{Name: "play music"},
			want: 0.95,
		},
		{
			name: "text contains name",
			text: "请帮我播放音乐吧",
			rec:  musicIntent(),
			want: 0.80,
		},
		{
			name: "name contains text",
			text: "音乐",
			rec:  intent.Intent{Name: "播放音乐"},
			want: 0.80,
		},
		{
			name: "description containment",
			text: "打开客厅的灯",
			rec:  intent.Intent{Name: "灯光控制", Description: "客厅的灯"},
			want: 0.70,
		},
		{
			name: "one of three keywords",
			text: "我想听歌",
			rec:  musicIntent(),
			want: 0.57,
		},
		{
			name: "all keywords capped",
			text: "today weather please",
			rec:  intent.Intent{Name: "weather forecast", Keywords: []string{"Weather", "today"}},
			want: 0.90,
		},
		{
			name: "similarity fallback",
			text: "play musik",
			rec:  intent.Intent{Name: "play music"},
			want: 0.54,
		},
		{
			name: "similarity below floor",
			text: "turn off the lights",
			rec:  intent.Intent{Name: "play music"},
			want: 0,
		},
		{
			name: "weak keyword score still allows similarity",
			text: "play some music nox",
			rec:  intent.Intent{Name: "play some music now", Keywords: tenKeywords},
			want: 0.57,
		},
		{
			name: "keyword score at gate skips similarity",
			text: "play some music nox",
			rec:  intent.Intent{Name: "play some music now", Keywords: tenKeywords[:5]},
			want: 0.50,
		},
		{
			name: "blank keywords ignored",
			text: "我想听歌",
			rec: intent.Intent{
				Name:     "播放音乐",
				Keywords: []string{"播放", " ", "音乐", "", "听歌"},
			},
			want: 0.57,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, recognition.Score(tc.text, tc.rec))
		})
	}
}

func TestScore_CeilingAndBounds(t *testing.T) {
	records := []intent.Intent{
		musicIntent(),
		{Name: "weather", Description: "weather", Keywords: []string{"weather"}},
		{Name: "a"},
		{Name: "turn on the lights", Description: "lights on", Keywords: []string{"lights", "on", "turn"}},
	}
	inputs := []string{"播放音乐", "weather", "WEATHER today", "a", "b", "turn on the lights please", "lights", "x", "听歌 播放 音乐"}

	for _, rec := range records {
		for _, text := range inputs {
			got := recognition.Score(text, rec)
			require.GreaterOrEqual(t, got, 0.0)
			require.LessOrEqual(t, got, 0.95)
			require.Equal(t, got, float64(int(got*100+0.5))/100, "score %v not rounded", got)
		}
		require.Equal(t, 0.95, recognition.Score(rec.Name, rec))
	}

	// Every keyword hit plus description containment still stays under the ceiling.
	rec := intent.Intent{Name: "lights", Description: "turn on", Keywords: []string{"turn", "on"}}
	require.Less(t, recognition.Score("please turn on", rec), 0.95)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"播放音乐", "播放歌曲", 2},
		{"héllo", "hello", 1},
		{"天气", "今天天气怎么样", 5},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, recognition.Levenshtein(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestLevenshtein_IdentitySymmetryAndReference(t *testing.T) {
	words := []string{"", "a", "ab", "abc", "kitten", "sitting", "播放音乐", "我想听歌", "héllo wörld", "hello world"}
	for _, a := range words {
		require.Zero(t, recognition.Levenshtein(a, a))
		for _, b := range words {
			d := recognition.Levenshtein(a, b)
			require.Equal(t, d, recognition.Levenshtein(b, a))
			require.Equal(t, fullTableDistance(a, b), d, "%q vs %q", a, b)
		}
	}
}

func TestSimilarity(t *testing.T) {
	require.Equal(t, 1.0, recognition.Similarity("", ""))
	require.Equal(t, 0.0, recognition.Similarity("abc", ""))
	require.InDelta(t, 0.9, recognition.Similarity("play musik", "play music"), 1e-9)
}

// fullTableDistance is the canonical O(n*m) table used as a reference.
func fullTableDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
		}
	}
	return d[len(ra)][len(rb)]
}
