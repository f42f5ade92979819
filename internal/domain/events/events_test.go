package events_test

import (
	"math"
	"testing"
	"time"

	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseEvent(t *testing.T) {
	convey.Convey("Given raw event strings", t, func() {
		convey.Convey("When parsing a well-formed descriptor", func() {
			distance, stroke, course, ok := events.ParseEvent("50 FR SCY")

			convey.Convey("Then all three parts resolve", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(distance, convey.ShouldEqual, "50")
				convey.So(stroke, convey.ShouldEqual, "free")
				convey.So(course, convey.ShouldEqual, "scy")
			})
		})

		convey.Convey("When stroke tokens vary by source", func() {
			cases := map[string]string{
				"100 BK SCY":     "back",
				"100 BACK LCM":   "back",
				"100 BR SCM":     "breast",
				"100 BREAST LCM": "breast",
				"100 FL SCY":     "fly",
				"100 FLY SCY":    "fly",
				"200 IM SCY":     "im",
				"200 FREE LCM":   "free",
			}
			for raw, want := range cases {
				_, stroke, _, ok := events.ParseEvent(raw)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(stroke, convey.ShouldEqual, want)
			}
		})

		convey.Convey("When the descriptor is malformed", func() {
			malformed := []string{
				"",
				"50 FR",          // too few tokens
				"fifty FR SCY",   // non-numeric distance
				"50 DOLPHIN SCY", // unknown stroke
				"50 FR YARDS",    // unknown course
			}
			for _, raw := range malformed {
				_, _, _, ok := events.ParseEvent(raw)

				convey.Convey("Then "+raw+" yields a null parse", func() {
					convey.So(ok, convey.ShouldBeFalse)
				})
			}
		})
	})
}

func TestParseSwimTime(t *testing.T) {
	convey.Convey("Given formatted swim times", t, func() {
		convey.Convey("When parsing the conventional forms", func() {
			convey.So(events.ParseSwimTime("21.45"), convey.ShouldAlmostEqual, 21.45, 1e-9)
			convey.So(events.ParseSwimTime("1:42.15"), convey.ShouldAlmostEqual, 102.15, 1e-9)
			convey.So(events.ParseSwimTime("1:02:03.50"), convey.ShouldAlmostEqual, 3723.50, 1e-9)
		})

		convey.Convey("When the time is unparsable", func() {
			for _, raw := range []string{"", "NT", "DQ", "1:2:3:4.5", "-5.0"} {
				convey.So(math.IsInf(events.ParseSwimTime(raw), 1), convey.ShouldBeTrue)
			}
		})
	})
}

func TestFormatSeconds(t *testing.T) {
	convey.Convey("Given seconds values", t, func() {
		convey.So(events.FormatSeconds(21.45), convey.ShouldEqual, "21.45")
		convey.So(events.FormatSeconds(102.15), convey.ShouldEqual, "1:42.15")
		convey.So(events.FormatSeconds(3723.5), convey.ShouldEqual, "1:02:03.50")
		convey.So(events.FormatSeconds(math.Inf(1)), convey.ShouldEqual, "—")

		convey.Convey("Then formatting round-trips through parsing", func() {
			for _, raw := range []string{"21.45", "1:42.15", "59.99", "10:00.00"} {
				sec := events.ParseSwimTime(raw)
				convey.So(events.FormatSeconds(sec), convey.ShouldEqual, raw)
			}
		})
	})
}

func TestAgeGroup(t *testing.T) {
	convey.Convey("Given raw ages", t, func() {
		cases := map[string]string{
			"8":       "10U",
			"10":      "10U",
			"11":      "11-12",
			"12":      "11-12",
			"13":      "13-14",
			"15":      "15-16",
			"17":      "17-18",
			"18":      "17-18",
			"19":      "Open",
			"42":      "Open",
			"":        "Open",
			"unknown": "Open",
		}
		for raw, want := range cases {
			convey.So(events.AgeGroup(raw), convey.ShouldEqual, want)
		}
	})
}

func TestParseDate(t *testing.T) {
	convey.Convey("Given swim dates in source layouts", t, func() {
		want := time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC)
		for _, raw := range []string{"2021-09-01", "9/1/2021", "09/01/2021", "Sep 1, 2021", "September 1, 2021"} {
			got, ok := events.ParseDate(raw)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(got.Equal(want), convey.ShouldBeTrue)
		}

		convey.Convey("When the date is unparsable", func() {
			for _, raw := range []string{"", "yesterday", "2021/31/12"} {
				got, ok := events.ParseDate(raw)
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(got.IsZero(), convey.ShouldBeTrue)
			}
		})
	})
}

func TestCatalogue(t *testing.T) {
	convey.Convey("Given the course catalogues", t, func() {
		convey.So(events.Catalogue("scy"), convey.ShouldContain, "1650-free")
		convey.So(events.Catalogue("lcm"), convey.ShouldContain, "1500-free")
		convey.So(events.Catalogue("scy"), convey.ShouldContain, "100-im")
		convey.So(events.Catalogue("lcm"), convey.ShouldNotContain, "100-im")
		convey.So(events.Catalogue("SCM"), convey.ShouldResemble, events.Catalogue("lcm"))
		convey.So(events.Catalogue("yards"), convey.ShouldBeNil)
	})
}

func TestSourceEvent(t *testing.T) {
	convey.Convey("Given the catalogue codes", t, func() {
		convey.So(events.SourceEvent("50-free", "scy"), convey.ShouldEqual, "50 FR SCY")
		convey.So(events.SourceEvent("200-im", "lcm"), convey.ShouldEqual, "200 IM LCM")
		convey.So(events.SourceEvent("oddball", "scy"), convey.ShouldEqual, "oddball")

		convey.Convey("Then every catalogue entry round-trips through the parser", func() {
			for _, course := range []string{"scy", "lcm", "scm"} {
				for _, code := range events.Catalogue(course) {
					raw := events.SourceEvent(code, course)
					distance, stroke, parsedCourse, ok := events.ParseEvent(raw)

					convey.So(ok, convey.ShouldBeTrue)
					convey.So(events.EventCode(distance, stroke), convey.ShouldEqual, code)
					convey.So(parsedCourse, convey.ShouldEqual, course)
				}
			}
		})

		convey.Convey("Then a generated row normalizes to a rankable swim", func() {
			s := events.Normalize(model.Swim{
				Event:   events.SourceEvent("100-breast", "scy"),
				Time:    "1:12.40",
				Age:     "13",
				DateRaw: "2022-03-14",
			})

			convey.So(s.EventCode, convey.ShouldEqual, "100-breast")
			convey.So(s.Course, convey.ShouldEqual, "scy")
			convey.So(math.IsInf(s.Seconds, 1), convey.ShouldBeFalse)
		})
	})
}

func TestFormatEventName(t *testing.T) {
	convey.Convey("Given event codes", t, func() {
		convey.So(events.FormatEventName("50-free"), convey.ShouldEqual, "50 Freestyle")
		convey.So(events.FormatEventName("200-im"), convey.ShouldEqual, "200 Individual Medley")
		convey.So(events.FormatEventName("100-fly"), convey.ShouldEqual, "100 Butterfly")
		convey.So(events.FormatEventName("oddball"), convey.ShouldEqual, "oddball")
	})
}

func TestNormalize(t *testing.T) {
	convey.Convey("Given a raw swim", t, func() {
		raw := model.Swim{
			SwimmerID:   "s1",
			SwimmerName: "Jane Doe",
			Event:       "100 FR SCY",
			Time:        "52.10",
			Age:         "13",
			DateRaw:     "2022-03-14",
			Team:        "Lakeside Aquatics",
		}

		convey.Convey("When normalizing", func() {
			s := events.Normalize(raw)

			convey.Convey("Then the derived columns are filled", func() {
				convey.So(s.Distance, convey.ShouldEqual, "100")
				convey.So(s.Stroke, convey.ShouldEqual, "free")
				convey.So(s.Course, convey.ShouldEqual, "scy")
				convey.So(s.EventCode, convey.ShouldEqual, "100-free")
				convey.So(s.Seconds, convey.ShouldAlmostEqual, 52.10, 1e-9)
				convey.So(s.AgeGroup, convey.ShouldEqual, "13-14")
				convey.So(s.HasDate(), convey.ShouldBeTrue)
			})

			convey.Convey("Then the raw columns are untouched", func() {
				convey.So(s.Event, convey.ShouldEqual, raw.Event)
				convey.So(s.Time, convey.ShouldEqual, raw.Time)
				convey.So(s.Team, convey.ShouldEqual, raw.Team)
			})
		})

		convey.Convey("When the event and time are garbage", func() {
			s := events.Normalize(model.Swim{Event: "splashing", Time: "NT", Age: "?", DateRaw: "soon"})

			convey.Convey("Then sentinels mark the swim unrankable", func() {
				convey.So(s.EventCode, convey.ShouldEqual, "")
				convey.So(math.IsInf(s.Seconds, 1), convey.ShouldBeTrue)
				convey.So(s.AgeGroup, convey.ShouldEqual, "Open")
				convey.So(s.HasDate(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestNormalizeCareer(t *testing.T) {
	convey.Convey("Given an unordered career", t, func() {
		career := model.Career{
			SwimmerID: "s1",
			Swims: []model.Swim{
				{Event: "50 FR SCY", Time: "25.00", DateRaw: "2022-06-01"},
				{Event: "50 FR SCY", Time: "26.00", DateRaw: "2021-06-01"},
				{Event: "50 FR SCY", Time: "24.50", DateRaw: "not a date"},
			},
		}

		convey.Convey("When normalizing the career", func() {
			got := events.NormalizeCareer(career)

			convey.Convey("Then swims are sorted by date with dateless rows first", func() {
				convey.So(got.Swims[0].HasDate(), convey.ShouldBeFalse)
				convey.So(got.Swims[1].DateRaw, convey.ShouldEqual, "2021-06-01")
				convey.So(got.Swims[2].DateRaw, convey.ShouldEqual, "2022-06-01")
			})
		})
	})
}
