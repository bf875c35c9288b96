package standing

import "testing"

func TestRank(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{TeamName: "Rack Attack", TeamRecord: TeamRecord{TeamID: "t1", MatchWins: 3, MatchTies: 1}},
		{TeamName: "bank shots", TeamRecord: TeamRecord{TeamID: "t2", MatchWins: 5}},
		{TeamName: "Cue Balls", TeamRecord: TeamRecord{TeamID: "t3", MatchWins: 3, MatchTies: 1}},
		{TeamName: "Scratch", TeamRecord: TeamRecord{TeamID: "t4", MatchWins: 3}},
	}

	got := Rank(rows)

	wantOrder := []string{"t2", "t3", "t1", "t4"}
	wantRank := []int{1, 2, 2, 4}
	for i := range got {
		if got[i].TeamID != wantOrder[i] || got[i].Rank != wantRank[i] {
			t.Fatalf("row %d = %s rank %d, want %s rank %d", i, got[i].TeamID, got[i].Rank, wantOrder[i], wantRank[i])
		}
	}
	if rows[0].Rank != 0 {
		t.Fatalf("Rank mutated its input")
	}
}
