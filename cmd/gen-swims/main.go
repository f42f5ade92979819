// Command gen-swims writes synthetic per-swimmer result CSVs for
// exercising the pipeline without collector output. Careers include
// club swims, unattached swims around the join date, and occasional
// swims for other clubs, so every classification category shows up.
package main

import (
	"crypto/rand"
	"encoding/csv"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/laneline/swimrecords/internal/domain/events"
)

// Default generation parameters.
const (
	defaultSwimmers = 25
	defaultSwims    = 40
	defaultTeam     = "Lakeside Aquatics"

	dirPermission  = 0o750
	filePermission = 0o600

	randomDivisor = 1000000

	careerSpanYears  = 8
	unattachedChance = 0.15 // share of swims marked Unattached
	otherClubChance  = 0.05 // share of swims for a rival club
	minAge           = 8
	maxAge           = 22

	baseSeconds   = 22.0
	secondsSpread = 120.0
)

var firstNames = []string{
	"Avery", "Blake", "Casey", "Drew", "Emerson", "Finley", "Harper",
	"Jordan", "Kendall", "Logan", "Morgan", "Parker", "Quinn", "Riley",
	"Sage", "Taylor",
}

var lastNames = []string{
	"Anderson", "Brooks", "Chen", "Diaz", "Ellis", "Foster", "Garcia",
	"Hayes", "Ivanov", "Kim", "Lopez", "Nguyen", "Olsen", "Patel",
	"Reyes", "Silva",
}

var rivalClubs = []string{
	"Harbor City Swim Club", "Northside Barracudas", "Valley Tide",
}

var meets = []string{
	"Spring Invitational", "Summer Championships", "Fall Classic",
	"Winter Junior Olympics", "Regional Qualifier", "Senior Open",
}

func main() {
	var (
		outDir   = flag.String("out", "data/raw/swimmers", "Directory for generated swimmer CSVs")
		swimmers = flag.Int("swimmers", defaultSwimmers, "Number of swimmers to generate")
		swims    = flag.Int("swims", defaultSwims, "Swims per swimmer")
		team     = flag.String("team", defaultTeam, "Club name for attached swims")
		course   = flag.String("course", "scy", "Course for generated events (scy, lcm, scm)")
	)
	flag.Parse()

	catalogue := events.Catalogue(*course)
	if len(catalogue) == 0 {
		os.Stderr.WriteString("unknown course: " + *course + "\n")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, dirPermission); err != nil {
		os.Stderr.WriteString("create output directory: " + err.Error() + "\n")
		os.Exit(1)
	}

	for i := 0; i < *swimmers; i++ {
		name := pick(firstNames) + " " + pick(lastNames)
		if err := writeSwimmer(*outDir, name, *team, *course, catalogue, *swims); err != nil {
			os.Stderr.WriteString("write swimmer: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	fmt.Printf("wrote %d swimmer files to %s\n", *swimmers, *outDir)
}

func writeSwimmer(dir, name, team, course string, catalogue []string, swims int) error {
	stem := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	path := filepath.Join(dir, stem+".csv")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Name", "Team", "Event", "SwimTime", "SwimDate", "Age", "Meet", "Gender", "personkey"}); err != nil {
		return err
	}

	id := uuid.NewString()
	gender := "F"
	if randomFloat() < 0.5 {
		gender = "M"
	}

	// Careers run forward from a random start so the join date falls
	// mid-career and unattached swims land on both sides of it.
	start := time.Date(2016+randomInt(4), time.Month(1+randomInt(12)), 1+randomInt(28), 0, 0, 0, 0, time.UTC)
	startAge := minAge + randomInt(6)
	span := time.Duration(careerSpanYears) * 365 * 24 * time.Hour

	for i := 0; i < swims; i++ {
		offset := time.Duration(float64(span) * float64(i) / float64(swims))
		date := start.Add(offset)
		age := startAge + int(offset.Hours()/24/365)
		if age > maxAge {
			age = maxAge
		}

		club := team
		switch r := randomFloat(); {
		case r < otherClubChance:
			club = pick(rivalClubs)
		case r < otherClubChance+unattachedChance:
			club = "Unattached"
		}

		row := []string{
			name,
			club,
			events.SourceEvent(pick(catalogue), course),
			events.FormatSeconds(baseSeconds + randomFloat()*secondsSpread),
			date.Format("2006-01-02"),
			strconv.Itoa(age),
			pick(meets),
			gender,
			id,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick(list []string) string {
	return list[randomInt(len(list))]
}
