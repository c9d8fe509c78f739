package aggregate_test

import (
	"errors"
	"testing"

	"github.com/okian/cohortviz/internal/domain/aggregate"
	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPercentages(t *testing.T) {
	Convey("Given raw bucket counts", t, func() {
		Convey("When men=3 and women=1", func() {
			m, w := aggregate.Percentages(3, 1)
			Convey("Then the split is 75/25", func() {
				So(m, ShouldEqual, 75)
				So(w, ShouldEqual, 25)
			})
		})

		Convey("When both buckets are empty", func() {
			m, w := aggregate.Percentages(0, 0)
			Convey("Then both percentages are zero", func() {
				So(m, ShouldEqual, 0)
				So(w, ShouldEqual, 0)
			})
		})

		Convey("When the split is a third", func() {
			m, w := aggregate.Percentages(1, 2)
			Convey("Then each share is rounded independently", func() {
				So(m, ShouldEqual, 33)
				So(w, ShouldEqual, 67)
			})
		})

		Convey("When a share lands on .5", func() {
			m, w := aggregate.Percentages(1, 7)
			Convey("Then rounding is half-to-even", func() {
				So(m, ShouldEqual, 12)
				So(w, ShouldEqual, 88)
			})
		})

		Convey("When only one bucket has members", func() {
			m, w := aggregate.Percentages(0, 4)
			So(m, ShouldEqual, 0)
			So(w, ShouldEqual, 100)
		})
	})
}

func TestParseCohort(t *testing.T) {
	Convey("Given raw cohort cells", t, func() {
		for raw, want := range map[string]int{"3": 3, "3.0": 3, "7.9": 7, "-2": -2} {
			got, err := aggregate.ParseCohort(raw)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		for _, raw := range []string{"three", "NaN", "inf", "1e400x"} {
			_, err := aggregate.ParseCohort(raw)
			So(errors.Is(err, aggregate.ErrCohortCoercion), ShouldBeTrue)
		}
	})
}

func TestJoinCohortsAndCoerce(t *testing.T) {
	Convey("Given filtered rows and awards", t, func() {
		rows := []model.Participation{
			{PersonID: "P1", AwardID: "A1"},
			{PersonID: "P2", AwardID: "A2"},
			{PersonID: "P3", AwardID: "A9"},
		}
		awards := []model.Award{
			{AwardID: "A1", Cohort: "2"},
			{AwardID: "A2", Cohort: "11"},
		}

		Convey("When joining cohorts", func() {
			recs := aggregate.JoinCohorts(rows, awards)

			Convey("Then unmatched rows are kept without a cohort", func() {
				So(len(recs), ShouldEqual, 3)
				So(recs[0].HasCohort, ShouldBeTrue)
				So(recs[0].RawCohort, ShouldEqual, "2")
				So(recs[2].HasCohort, ShouldBeFalse)
			})

			Convey("And coercing without dropping", func() {
				_, _, err := aggregate.Coerce(recs, false)

				Convey("Then the unmatched award aborts the run", func() {
					So(errors.Is(err, aggregate.ErrCohortCoercion), ShouldBeTrue)
					So(err.Error(), ShouldContainSubstring, "A9")
				})
			})

			Convey("And coercing with dropping", func() {
				out, dropped, err := aggregate.Coerce(recs, true)

				Convey("Then the unmatched row is dropped and counted", func() {
					So(err, ShouldBeNil)
					So(dropped, ShouldEqual, 1)
					So(len(out), ShouldEqual, 2)
					So(out[0].Cohort, ShouldEqual, 2)
					So(out[1].Cohort, ShouldEqual, 11)
				})

				Convey("And restricting to 1-9 removes cohort 11", func() {
					kept := aggregate.InRange(out, 1, 9)
					So(len(kept), ShouldEqual, 1)
					for _, r := range kept {
						So(r.Cohort, ShouldBeBetweenOrEqual, 1, 9)
					}
				})
			})
		})

		Convey("When an award has a non-numeric cohort", func() {
			recs := aggregate.JoinCohorts(rows[:1], []model.Award{{AwardID: "A1", Cohort: "two"}})
			_, _, err := aggregate.Coerce(recs, true)

			Convey("Then coercion fails even when dropping nulls", func() {
				So(errors.Is(err, aggregate.ErrCohortCoercion), ShouldBeTrue)
			})
		})

		Convey("When an award has an empty cohort cell", func() {
			recs := aggregate.JoinCohorts(rows[:1], []model.Award{{AwardID: "A1", Cohort: " "}})

			Convey("Then it is treated as null", func() {
				_, _, err := aggregate.Coerce(recs, false)
				So(errors.Is(err, aggregate.ErrCohortCoercion), ShouldBeTrue)

				out, dropped, err := aggregate.Coerce(recs, true)
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 1)
				So(len(out), ShouldEqual, 0)
			})
		})

		Convey("When an award id is listed twice", func() {
			recs := aggregate.JoinCohorts(rows[:1], []model.Award{{AwardID: "A1", Cohort: "2"}, {AwardID: "A1", Cohort: "3"}})

			Convey("Then the row is repeated per listing", func() {
				So(len(recs), ShouldEqual, 2)
				So(recs[1].RawCohort, ShouldEqual, "3")
			})
		})
	})
}

func TestJoinGenders(t *testing.T) {
	Convey("Given records and demographics", t, func() {
		recs := []model.Record{
			{PersonID: "P1", Cohort: 1},
			{PersonID: "P2", Cohort: 1},
			{PersonID: "P3", Cohort: 2},
		}
		demos := []model.Demographic{
			{PersonID: "P1", Gender: "man"},
			{PersonID: "P3", Gender: "non-binary"},
		}

		Convey("When joining genders", func() {
			out := aggregate.JoinGenders(recs, demos)

			Convey("Then people without demographics are dropped", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Gender, ShouldEqual, "man")
				So(out[1].Gender, ShouldEqual, "non-binary")
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a working table", t, func() {
		recs := []model.Record{
			{PersonID: "P1", Cohort: 3, Gender: "man"},
			{PersonID: "P2", Cohort: 1, Gender: "woman"},
			{PersonID: "P3", Cohort: 3, Gender: "man"},
			{PersonID: "P4", Cohort: 3, Gender: "woman"},
			{PersonID: "P5", Cohort: 3, Gender: "man"},
			{PersonID: "P6", Cohort: 5, Gender: "non-binary"},
			{PersonID: "P7", Cohort: 1, Gender: "woman"},
			{PersonID: "P8", Cohort: 1, Gender: ""},
		}

		Convey("When summarizing", func() {
			s, err := aggregate.Summarize(recs, types.LevelPerson, 1, 9)
			So(err, ShouldBeNil)

			Convey("Then cohorts are ascending and distinct", func() {
				So(len(s.Cohorts), ShouldEqual, 3)
				So(s.Cohorts[0].Cohort, ShouldEqual, 1)
				So(s.Cohorts[1].Cohort, ShouldEqual, 3)
				So(s.Cohorts[2].Cohort, ShouldEqual, 5)
			})

			Convey("Then buckets and percentages are computed per cohort", func() {
				c3 := s.Cohorts[1]
				So(c3.Men, ShouldEqual, 3)
				So(c3.Women, ShouldEqual, 1)
				So(c3.MenPercent, ShouldEqual, 75)
				So(c3.WomenPercent, ShouldEqual, 25)
			})

			Convey("Then third genders are silently excluded", func() {
				c5 := s.Cohorts[2]
				So(c5.Men, ShouldEqual, 0)
				So(c5.Women, ShouldEqual, 0)
				So(c5.MenPercent, ShouldEqual, 0)
				So(c5.WomenPercent, ShouldEqual, 0)
				So(s.Genders, ShouldResemble, []string{"man", "non-binary", "woman"})
			})

			Convey("Then per-cohort buckets never exceed the cohort's rows", func() {
				rows := map[int]int{}
				for _, r := range recs {
					rows[r.Cohort]++
				}
				for _, c := range s.Cohorts {
					So(c.Men+c.Women, ShouldBeLessThanOrEqualTo, rows[c.Cohort])
				}
			})

			Convey("Then n counts only men and women", func() {
				So(s.Rows, ShouldEqual, 8)
				So(s.Total(), ShouldEqual, 6)
				So(s.N, ShouldEqual, 6)
			})
		})

		Convey("When a third gender sits beside one man and one woman", func() {
			s, err := aggregate.Summarize([]model.Record{
				{Cohort: 2, Gender: "man"},
				{Cohort: 2, Gender: "woman"},
				{Cohort: 2, Gender: "other"},
			}, types.LevelPerson, 1, 9)

			Convey("Then percentages ignore it and are not normalised", func() {
				So(err, ShouldBeNil)
				So(s.Cohorts[0].MenPercent, ShouldEqual, 50)
				So(s.Cohorts[0].WomenPercent, ShouldEqual, 50)
				So(s.Total(), ShouldEqual, 2)
			})
		})

		Convey("When the range is inverted", func() {
			_, err := aggregate.Summarize(recs, types.LevelPerson, 9, 1)
			So(errors.Is(err, aggregate.ErrInvalidRange), ShouldBeTrue)
		})

		Convey("When there are no records", func() {
			s, err := aggregate.Summarize(nil, types.LevelRole, 1, 9)
			So(err, ShouldBeNil)
			So(len(s.Cohorts), ShouldEqual, 0)
			So(s.Total(), ShouldEqual, 0)
			So(s.Level, ShouldEqual, types.LevelRole)
		})
	})
}

func TestEndToEndScenario(t *testing.T) {
	Convey("Given award A1 in cohort 2 with two external co-investigators", t, func() {
		awards := []model.Award{{AwardID: "A1", Cohort: "2"}}
		rows := []model.Participation{
			{AwardType: "it", AwardRole: "co-investigator", PersonID: "P1", AwardID: "A1"},
			{AwardType: "it", AwardRole: "co-investigator", PersonID: "P2", AwardID: "A1"},
		}
		demos := []model.Demographic{{PersonID: "P1", Gender: "man"}, {PersonID: "P2", Gender: "woman"}}

		Convey("When the rows run through join, coercion, range and gender join", func() {
			recs, _, err := aggregate.Coerce(aggregate.JoinCohorts(rows, awards), false)
			So(err, ShouldBeNil)
			recs = aggregate.JoinGenders(aggregate.InRange(recs, 1, 9), demos)
			s, err := aggregate.Summarize(recs, types.LevelPerson, 1, 9)

			Convey("Then cohort 2 is 1 man, 1 woman, 50/50, n=2", func() {
				So(err, ShouldBeNil)
				So(s.Cohorts, ShouldResemble, []model.CohortCount{{Cohort: 2, Men: 1, Women: 1, MenPercent: 50, WomenPercent: 50}})
				So(s.Total(), ShouldEqual, 2)
			})
		})
	})
}
