package classify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laneline/swimrecords/internal/domain/classify"
	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

var allInclude = classify.DecisionSet{
	HighSchool:     model.Include,
	Probationary:   model.Include,
	College:        model.Include,
	MiscUnattached: model.Include,
}

var allExclude = classify.DecisionSet{
	HighSchool:     model.Exclude,
	Probationary:   model.Exclude,
	College:        model.Exclude,
	MiscUnattached: model.Exclude,
}

// swim builds a normalized swim with the fields classification reads.
func swim(team, date, age string) model.Swim {
	return events.Normalize(model.Swim{
		SwimmerID: "s1",
		Event:     "50 FR SCY",
		Time:      "25.00",
		Team:      team,
		DateRaw:   date,
		Age:       age,
	})
}

func career(swims ...model.Swim) model.Career {
	c := model.Career{SwimmerID: "s1", SwimmerName: "Jane Doe", Swims: swims}
	c.Sort()
	return c
}

func TestClassifyTransferWindow(t *testing.T) {
	convey.Convey("Given a classifier for Lakeside Aquatics", t, func() {
		ctx := context.Background()
		c := classify.New([]string{"Lakeside Aquatics"})

		convey.Convey("When a swimmer transfers in before the rule change", func() {
			// Other club, then unattached inside the 120-day window, then
			// the first team swim.
			res, err := c.Classify(ctx, career(
				swim("Harbor City Swim Club", "2021-01-01", "12"),
				swim("Unattached", "2021-06-01", "12"),
				swim("Lakeside Aquatics", "2021-09-01", "12"),
			), allInclude)

			convey.Convey("Then the gap swim is probationary under the 120-day rule", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[0].Label, convey.ShouldEqual, model.OtherClub)
				convey.So(res.Swims[1].Label, convey.ShouldEqual, model.Probationary)
				convey.So(res.Swims[1].RuleDays, convey.ShouldEqual, 120)
				convey.So(res.Swims[2].Label, convey.ShouldEqual, model.Official)
			})
		})

		convey.Convey("When the unattached swim predates the window", func() {
			res, err := c.Classify(ctx, career(
				swim("Harbor City Swim Club", "2020-06-01", "12"),
				swim("Unattached", "2021-02-01", "12"),
				swim("Lakeside Aquatics", "2021-09-01", "12"),
			), allInclude)

			convey.Convey("Then it is misc unattached, not probationary", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[1].Label, convey.ShouldEqual, model.MiscUnattached)
				convey.So(res.Swims[1].RuleDays, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the swim dates on or after the rule cutoff", func() {
			res, err := c.Classify(ctx, career(
				swim("Harbor City Swim Club", "2023-01-15", "14"),
				swim("Unattached", "2023-03-01", "14"), // 61 days before joining
				swim("Unattached", "2023-04-01", "14"), // 30 days before joining
				swim("Lakeside Aquatics", "2023-05-01", "14"),
			), allInclude)

			convey.Convey("Then only swims inside the 60-day window are probationary", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[1].Label, convey.ShouldEqual, model.MiscUnattached)
				convey.So(res.Swims[2].Label, convey.ShouldEqual, model.Probationary)
				convey.So(res.Swims[2].RuleDays, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When the swimmer never swam for another club first", func() {
			res, err := c.Classify(ctx, career(
				swim("Unattached", "2021-08-01", "12"),
				swim("Lakeside Aquatics", "2021-09-01", "12"),
			), allInclude)

			convey.Convey("Then the window never applies without a prior club", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[0].Label, convey.ShouldEqual, model.MiscUnattached)
			})
		})

		convey.Convey("When the other-club swim comes after joining", func() {
			res, err := c.Classify(ctx, career(
				swim("Lakeside Aquatics", "2021-01-01", "12"),
				swim("Harbor City Swim Club", "2021-03-01", "12"),
				swim("Unattached", "2021-04-01", "12"),
			), allInclude)

			convey.Convey("Then it never arms the probation flag", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[2].Label, convey.ShouldEqual, model.MiscUnattached)
			})
		})
	})
}

func TestClassifyCategories(t *testing.T) {
	convey.Convey("Given a classifier for Lakeside Aquatics", t, func() {
		ctx := context.Background()
		c := classify.New([]string{"Lakeside Aquatics"})

		convey.Convey("When an unattached swimmer is of college age", func() {
			res, err := c.Classify(ctx, career(
				swim("Unattached", "2022-01-15", "19"),
			), allInclude)

			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Swims[0].Label, convey.ShouldEqual, model.College)
		})

		convey.Convey("When a high school marker appears in the affiliation", func() {
			res, err := c.Classify(ctx, career(
				swim("Harbor City Swim Club", "2021-05-01", "16"),
				swim("Unattached - Westview High School", "2021-08-15", "16"),
				swim("Lakeside Aquatics", "2021-09-01", "16"),
			), allInclude)

			convey.Convey("Then high school outranks the probation window", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[1].Label, convey.ShouldEqual, model.HighSchool)
			})
		})

		convey.Convey("When the affiliation is another club's", func() {
			res, err := c.Classify(ctx, career(
				swim("Harbor City Swim Club", "2021-05-01", "12"),
			), allInclude)

			convey.Convey("Then the swim is always excluded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Swims[0].Label, convey.ShouldEqual, model.OtherClub)
				convey.So(res.Swims[0].Decision, convey.ShouldEqual, model.Exclude)
			})
		})

		convey.Convey("When the affiliation is empty", func() {
			res, err := c.Classify(ctx, career(
				swim("", "2021-05-01", "12"),
			), allInclude)

			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Swims[0].Label, convey.ShouldEqual, model.Unknown)
			convey.So(res.Swims[0].Decision, convey.ShouldEqual, model.Exclude)
		})

		convey.Convey("When team matching crosses case and substrings", func() {
			res, err := c.Classify(ctx, career(
				swim("LAKESIDE AQUATICS - GOLD", "2021-05-01", "12"),
			), allInclude)

			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Swims[0].Label, convey.ShouldEqual, model.Official)
		})
	})
}

func TestClassifyDecisions(t *testing.T) {
	convey.Convey("Given one career with every ambiguous category", t, func() {
		ctx := context.Background()
		c := classify.New([]string{"Lakeside Aquatics"})
		full := career(
			swim("Harbor City Swim Club", "2021-01-01", "12"),
			swim("Unattached", "2021-06-01", "12"),
			swim("Unattached - Westview High School", "2021-07-01", "16"),
			swim("Lakeside Aquatics", "2021-09-01", "12"),
			swim("Unattached", "2022-06-01", "19"), // college
			swim("Unattached", "2022-07-01", "30"), // misc
		)

		convey.Convey("When every ambiguous decision is include", func() {
			res, err := c.Classify(ctx, full, allInclude)

			convey.Convey("Then only other-club swims are excluded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(res.Official), convey.ShouldEqual, 5)
				convey.So(len(res.Excluded), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When every ambiguous decision is exclude", func() {
			res, err := c.Classify(ctx, full, allExclude)

			convey.Convey("Then only team swims remain official", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(res.Official), convey.ShouldEqual, 1)
				convey.So(res.Official[0].Label, convey.ShouldEqual, model.Official)
			})
		})

		convey.Convey("When classifying the same career twice", func() {
			first, err1 := c.Classify(ctx, full, allInclude)
			second, err2 := c.Classify(ctx, full, allInclude)

			convey.Convey("Then results are identical", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(second, convey.ShouldResemble, first)
			})
		})

		convey.Convey("Then every swim lands in exactly one partition", func() {
			res, err := c.Classify(ctx, full, allInclude)

			convey.So(err, convey.ShouldBeNil)
			convey.So(len(res.Official)+len(res.Excluded), convey.ShouldEqual, len(full.Swims))
			total := 0
			for _, n := range res.Counts {
				total += n
			}
			convey.So(total, convey.ShouldEqual, len(full.Swims))
		})

		convey.Convey("When the decision set is incomplete", func() {
			_, err := c.Classify(ctx, full, classify.DecisionSet{HighSchool: model.Include})

			convey.So(errors.Is(err, classify.ErrIncompleteDecisions), convey.ShouldBeTrue)
		})

		convey.Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := c.Classify(cancelled, full, allInclude)

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestTransferPolicy(t *testing.T) {
	convey.Convey("Given the default transfer policy", t, func() {
		p := classify.DefaultTransferPolicy()
		join := time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC)

		convey.Convey("Then the window is left inclusive and right exclusive", func() {
			start := join.AddDate(0, 0, -120)
			convey.So(p.InWindow(start, join), convey.ShouldBeTrue)
			convey.So(p.InWindow(start.AddDate(0, 0, -1), join), convey.ShouldBeFalse)
			convey.So(p.InWindow(join, join), convey.ShouldBeFalse)
			convey.So(p.InWindow(join.AddDate(0, 0, -1), join), convey.ShouldBeTrue)
		})

		convey.Convey("Then the window length follows the swim's own date", func() {
			convey.So(p.WindowDays(time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, 120)
			convey.So(p.WindowDays(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, 60)
		})

		convey.Convey("Then zero dates never fall in a window", func() {
			convey.So(p.InWindow(time.Time{}, join), convey.ShouldBeFalse)
			convey.So(p.InWindow(join, time.Time{}), convey.ShouldBeFalse)
		})

		convey.Convey("When a custom policy is supplied", func() {
			c := classify.New([]string{"Lakeside"}, classify.WithTransferPolicy(classify.TransferPolicy{
				Cutoff:         time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
				PreCutoffDays:  10,
				PostCutoffDays: 5,
			}))

			res, err := c.Classify(context.Background(), career(
				swim("Harbor City Swim Club", "2021-01-01", "12"),
				swim("Unattached", "2021-06-01", "12"), // 92 days out, beyond 10
				swim("Lakeside Aquatics", "2021-09-01", "12"),
			), allInclude)

			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Swims[1].Label, convey.ShouldEqual, model.MiscUnattached)
		})
	})
}
