package classify_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/laneline/swimrecords/internal/domain/classify"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDecisionSet(t *testing.T) {
	convey.Convey("Given a decision set", t, func() {
		convey.Convey("When every category is decided", func() {
			convey.So(allInclude.Validate(), convey.ShouldBeNil)
			convey.So(allExclude.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When a category is missing", func() {
			d := classify.DecisionSet{
				HighSchool:   model.Include,
				Probationary: model.Include,
				College:      model.Include,
			}

			err := d.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, classify.ErrIncompleteDecisions), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "MiscUnattached")
		})

		convey.Convey("When overriding one category", func() {
			d := allInclude.With(model.College, model.Exclude)

			convey.So(d.For(model.College), convey.ShouldEqual, model.Exclude)
			convey.So(d.For(model.HighSchool), convey.ShouldEqual, model.Include)
			convey.So(allInclude.For(model.College), convey.ShouldEqual, model.Include)
		})

		convey.Convey("When asked for a fixed-treatment label", func() {
			convey.So(allInclude.For(model.OtherClub), convey.ShouldEqual, model.Exclude)
			convey.So(allInclude.For(model.Official), convey.ShouldEqual, model.Exclude)
		})
	})
}

func TestDecisionFile(t *testing.T) {
	convey.Convey("Given a decision file path", t, func() {
		path := filepath.Join(t.TempDir(), classify.DefaultDecisionFile)

		convey.Convey("When saving and reloading a decision set", func() {
			d := classify.DecisionSet{
				HighSchool:     model.Exclude,
				Probationary:   model.Include,
				College:        model.Include,
				MiscUnattached: model.Exclude,
			}

			err := classify.SaveDecisions(path, d, "1.2.0")
			convey.So(err, convey.ShouldBeNil)

			got, err := classify.LoadDecisions(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldResemble, d)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := classify.LoadDecisions(path)

			convey.So(errors.Is(err, classify.ErrNoDecisionFile), convey.ShouldBeTrue)
		})

		convey.Convey("When the file is corrupt", func() {
			convey.So(os.WriteFile(path, []byte("{not json"), 0o600), convey.ShouldBeNil)

			_, err := classify.LoadDecisions(path)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, classify.ErrNoDecisionFile), convey.ShouldBeFalse)
		})

		convey.Convey("When saving an incomplete set", func() {
			err := classify.SaveDecisions(path, classify.DecisionSet{}, "1.2.0")

			convey.So(errors.Is(err, classify.ErrIncompleteDecisions), convey.ShouldBeTrue)
			_, statErr := os.Stat(path)
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})
}
