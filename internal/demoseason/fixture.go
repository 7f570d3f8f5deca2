package demoseason

// The fixture is a recorded eight-episode fantasy season: fourteen
// queens with per-episode scoring codes, five eliminations, and twenty
// league teams of five queens each. Replaying it drives every write
// path of the service and the recorded points make the outcome
// verifiable.

// Queen is one contestant with their recorded season.
type Queen struct {
	ID           string
	Name         string
	EliminatedEp int // 0 means never eliminated

	// EpisodeCodes holds the comma-separated scoring codes per
	// episode, exactly as the scorekeeper entered them.
	EpisodeCodes map[int]string

	// EpisodePoints holds the independently tallied points per
	// episode, used to verify the service's scoring.
	EpisodePoints map[int]int
}

// Team is one league team: a roster of five queen IDs and a winner
// pick.
type Team struct {
	ID         string
	Name       string
	Roster     [5]string
	WinnerPick string
}

// Season constants for the demo fixture.
const (
	SeasonName      = "Drag Race Fantasy Demo"
	TotalEpisodes   = 16
	RecordedEps     = 8
	PotPerTeamCents = 2000
)

// PotSplit is the 60/25/15 prize split across the top three ranks.
var PotSplit = [3]float64{0.60, 0.25, 0.15}

// AccumulatingCodes are the codes entered with an occurrence count;
// everything else is a per-episode toggle.
var AccumulatingCodes = map[string]bool{"E": true, "C": true}

// DefaultRules is the demo rule table in snapshot form.
var DefaultRules = []Rule{
	{Code: "E", Points: 1, Label: "Makes Ru laugh / Acrobatic / Winning bestie", Accumulates: true},
	{Code: "C", Points: 2, Label: "Wig snatch / Clothing reveal", Accumulates: true},
	{Code: "A", Points: 5, Label: "Mini challenge — top queen"},
	{Code: "B", Points: 3, Label: "Safe / Lip sync winner"},
	{Code: "D", Points: 10, Label: "Maxi challenge winner"},
	{Code: "F", Points: -2, Label: "Relying on body / Loses wig / Nip slip"},
	{Code: "G", Points: -1, Label: "Feuding queens"},
	{Code: "H", Points: 50, Label: "You correctly picked the season winner!", Seasonal: true},
	{Code: "I", Points: 30, Label: "Season winner is on your team", Seasonal: true},
	{Code: "J", Points: 25, Label: "Miss Congeniality is on your team", Seasonal: true},
	{Code: "K", Points: 20, Label: "Your queen makes the finale", Seasonal: true},
}

// Queens holds the recorded cast.
var Queens = []Queen{
	{
		ID: "athena-dion", Name: "Athena Dion",
		EpisodeCodes:  map[int]string{1: "E,G,B", 2: "B", 3: "B", 4: "E,B,G", 6: "D,B,E,E", 7: "B,E", 8: "B,E,E,E"},
		EpisodePoints: map[int]int{1: 3, 2: 3, 3: 3, 4: 3, 6: 15, 7: 4, 8: 6},
	},
	{
		ID: "briar-blush", Name: "Briar Blush", EliminatedEp: 4,
		EpisodeCodes:  map[int]string{1: "G,B", 2: "B", 3: "B", 4: "G"},
		EpisodePoints: map[int]int{1: 2, 2: 3, 3: 3, 4: -1},
	},
	{
		ID: "ciara-myst", Name: "Ciara Myst", EliminatedEp: 5,
		EpisodeCodes:  map[int]string{1: "E,B", 2: "B", 3: "B", 4: "A,E", 5: "C"},
		EpisodePoints: map[int]int{1: 4, 2: 3, 3: 3, 4: 6, 5: 2},
	},
	{
		ID: "darlene-mitchell", Name: "Darlene Mitchell",
		EpisodeCodes:  map[int]string{1: "E,B", 2: "B", 3: "A", 4: "B", 5: "B,E,C", 7: "A,E", 8: "B,E,E"},
		EpisodePoints: map[int]int{1: 4, 2: 3, 3: 5, 4: 3, 5: 6, 7: 6, 8: 5},
	},
	{
		ID: "dd-fuego", Name: "DD Fuego", EliminatedEp: 1,
		EpisodeCodes:  map[int]string{1: "B"},
		EpisodePoints: map[int]int{1: 3},
	},
	{
		ID: "discord-addams", Name: "Discord Addams",
		EpisodeCodes:  map[int]string{1: "B", 2: "B", 3: "B", 4: "B", 6: "B,E", 7: "B", 8: "B,E,E,E,E,E"},
		EpisodePoints: map[int]int{1: 3, 2: 3, 3: 3, 4: 3, 6: 4, 7: 3, 8: 8},
	},
	{
		ID: "jane-dont", Name: "Jane Don't",
		EpisodeCodes:  map[int]string{1: "E,B", 2: "E,E,D", 3: "A", 4: "A,E", 6: "A,E", 7: "A,E", 8: "A,E,E,E,E"},
		EpisodePoints: map[int]int{1: 4, 2: 12, 3: 5, 4: 6, 6: 6, 7: 6, 8: 9},
	},
	{
		ID: "juicy-love-dion", Name: "Juicy Love Dion",
		EpisodeCodes:  map[int]string{1: "E,B", 2: "E,E,B", 3: "D", 4: "E,B", 5: "D,E,E,E,E,E,B", 7: "B,E,E,E,E", 8: "B,E"},
		EpisodePoints: map[int]int{1: 4, 2: 5, 3: 10, 4: 4, 5: 18, 7: 7, 8: 4},
	},
	{
		ID: "kenya-pleaser", Name: "Kenya Pleaser",
		EpisodeCodes:  map[int]string{1: "E,A,E", 2: "E,B", 3: "B,E", 4: "B,E", 6: "B,E", 7: "B,E", 8: "B,E"},
		EpisodePoints: map[int]int{1: 7, 2: 4, 3: 4, 4: 4, 6: 4, 7: 4, 8: 4},
	},
	{
		ID: "mandy-mango", Name: "Mandy Mango", EliminatedEp: 2,
		EpisodeCodes:  map[int]string{2: "B"},
		EpisodePoints: map[int]int{2: 3},
	},
	{
		ID: "mia-starr", Name: "Mia Starr",
		EpisodeCodes:  map[int]string{1: "E,B", 2: "E,A", 3: "B", 4: "B,G", 5: "D,C,B", 7: "B", 8: "E"},
		EpisodePoints: map[int]int{1: 4, 2: 6, 3: 3, 4: 2, 5: 15, 7: 3, 8: 1},
	},
	{
		ID: "myki-meeks", Name: "Myki Meeks",
		EpisodeCodes:  map[int]string{1: "E,B", 2: "B", 3: "B", 4: "B", 6: "B,E,E", 7: "D,E", 8: "A,E,E,E,E,E,E,E,E"},
		EpisodePoints: map[int]int{1: 4, 2: 3, 3: 3, 4: 3, 6: 5, 7: 11, 8: 13},
	},
	{
		ID: "nini-coco", Name: "Nini Coco",
		EpisodeCodes:  map[int]string{1: "D,B", 2: "B", 3: "B", 4: "E,B", 5: "B,E,E", 7: "B,E", 8: "D,E,E,E,E,E"},
		EpisodePoints: map[int]int{1: 13, 2: 3, 3: 3, 4: 4, 5: 5, 7: 4, 8: 15},
	},
	{
		ID: "vita-vontesse-starr", Name: "Vita VonTesse Starr", EliminatedEp: 5,
		EpisodeCodes:  map[int]string{1: "A,E", 2: "B", 3: "B", 4: "D,E", 5: "B"},
		EpisodePoints: map[int]int{1: 6, 2: 3, 3: 3, 4: 11, 5: 3},
	},
}

// Teams holds the twenty league teams.
var Teams = []Team{
	{ID: "team-01", Name: "Team 1", Roster: [5]string{"juicy-love-dion", "jane-dont", "nini-coco", "myki-meeks", "kenya-pleaser"}, WinnerPick: "juicy-love-dion"},
	{ID: "team-02", Name: "Team 2", Roster: [5]string{"jane-dont", "kenya-pleaser", "nini-coco", "athena-dion", "darlene-mitchell"}, WinnerPick: "nini-coco"},
	{ID: "team-03", Name: "Team 3", Roster: [5]string{"juicy-love-dion", "nini-coco", "myki-meeks", "jane-dont", "discord-addams"}, WinnerPick: "jane-dont"},
	{ID: "team-04", Name: "Team 4", Roster: [5]string{"kenya-pleaser", "jane-dont", "athena-dion", "mia-starr", "darlene-mitchell"}, WinnerPick: "kenya-pleaser"},
	{ID: "team-05", Name: "Team 5", Roster: [5]string{"nini-coco", "juicy-love-dion", "myki-meeks", "jane-dont", "discord-addams"}, WinnerPick: "nini-coco"},
	{ID: "team-06", Name: "Team 6", Roster: [5]string{"jane-dont", "juicy-love-dion", "nini-coco", "athena-dion", "mia-starr"}, WinnerPick: "juicy-love-dion"},
	{ID: "team-07", Name: "Team 7", Roster: [5]string{"myki-meeks", "kenya-pleaser", "nini-coco", "juicy-love-dion", "jane-dont"}, WinnerPick: "myki-meeks"},
	{ID: "team-08", Name: "Team 8", Roster: [5]string{"juicy-love-dion", "nini-coco", "jane-dont", "kenya-pleaser", "athena-dion"}, WinnerPick: "jane-dont"},
	{ID: "team-09", Name: "Team 9", Roster: [5]string{"nini-coco", "myki-meeks", "juicy-love-dion", "jane-dont", "darlene-mitchell"}, WinnerPick: "nini-coco"},
	{ID: "team-10", Name: "Team 10", Roster: [5]string{"jane-dont", "kenya-pleaser", "juicy-love-dion", "athena-dion", "discord-addams"}, WinnerPick: "kenya-pleaser"},
	{ID: "team-11", Name: "Team 11", Roster: [5]string{"nini-coco", "juicy-love-dion", "kenya-pleaser", "myki-meeks", "mia-starr"}, WinnerPick: "juicy-love-dion"},
	{ID: "team-12", Name: "Team 12", Roster: [5]string{"juicy-love-dion", "jane-dont", "myki-meeks", "nini-coco", "darlene-mitchell"}, WinnerPick: "juicy-love-dion"},
	{ID: "team-13", Name: "Team 13", Roster: [5]string{"kenya-pleaser", "nini-coco", "jane-dont", "athena-dion", "mia-starr"}, WinnerPick: "nini-coco"},
	{ID: "team-14", Name: "Team 14", Roster: [5]string{"myki-meeks", "juicy-love-dion", "jane-dont", "kenya-pleaser", "nini-coco"}, WinnerPick: "jane-dont"},
	{ID: "team-15", Name: "Team 15", Roster: [5]string{"jane-dont", "nini-coco", "juicy-love-dion", "myki-meeks", "discord-addams"}, WinnerPick: "nini-coco"},
	{ID: "team-16", Name: "Team 16", Roster: [5]string{"juicy-love-dion", "kenya-pleaser", "nini-coco", "jane-dont", "mia-starr"}, WinnerPick: "juicy-love-dion"},
	{ID: "team-17", Name: "Team 17", Roster: [5]string{"nini-coco", "jane-dont", "kenya-pleaser", "myki-meeks", "athena-dion"}, WinnerPick: "nini-coco"},
	{ID: "team-18", Name: "Team 18", Roster: [5]string{"juicy-love-dion", "nini-coco", "myki-meeks", "jane-dont", "darlene-mitchell"}, WinnerPick: "myki-meeks"},
	{ID: "team-19", Name: "Team 19", Roster: [5]string{"jane-dont", "kenya-pleaser", "nini-coco", "juicy-love-dion", "discord-addams"}, WinnerPick: "jane-dont"},
	{ID: "team-20", Name: "Team 20", Roster: [5]string{"nini-coco", "juicy-love-dion", "jane-dont", "kenya-pleaser", "myki-meeks"}, WinnerPick: "kenya-pleaser"},
}

// QueenTotal sums a queen's recorded points through the given episode.
func QueenTotal(q Queen, throughEpisode int) int {
	total := 0
	for ep, pts := range q.EpisodePoints {
		if ep <= throughEpisode {
			total += pts
		}
	}
	return total
}

// ExpectedTeamTotals computes each team's expected total through the
// given episode from the recorded per-queen points.
func ExpectedTeamTotals(throughEpisode int) map[string]int {
	byID := make(map[string]Queen, len(Queens))
	for _, q := range Queens {
		byID[q.ID] = q
	}
	totals := make(map[string]int, len(Teams))
	for _, t := range Teams {
		sum := 0
		for _, qid := range t.Roster {
			sum += QueenTotal(byID[qid], throughEpisode)
		}
		totals[t.ID] = sum
	}
	return totals
}
