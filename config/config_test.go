package config

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	convey.Convey("defaults", t, func() {
		t.Setenv("ROVER_MAX_ROWS", "")
		t.Setenv("ROVER_RESULTS_FILE", "")
		cfg := Load()
		convey.So(cfg.ResultsFile, convey.ShouldEqual, DefaultResultsFile)
		convey.So(cfg.MaxRows, convey.ShouldEqual, -1)
		convey.So(cfg.Archive.Region, convey.ShouldEqual, "us-east-1")
	})

	convey.Convey("environment overrides", t, func() {
		t.Setenv("ROVER_MAX_ROWS", "3")
		t.Setenv("ROVER_COLUMNS", "")
		t.Setenv("ROVER_LABEL_FIELDS", "SOLAR_LONGITUDE, PARMS.RQT_ID")
		t.Setenv("ARCHIVE_S3_USE_SSL", "false")
		cfg := Load()
		convey.So(cfg.MaxRows, convey.ShouldEqual, 3)
		convey.So(cfg.Columns, convey.ShouldBeEmpty)
		convey.So(cfg.LabelFields, convey.ShouldResemble, []string{"SOLAR_LONGITUDE", "PARMS.RQT_ID"})
		convey.So(cfg.Archive.UseSSL, convey.ShouldBeFalse)
	})

	convey.Convey("split list", t, func() {
		convey.So(SplitList(" A,,B ,"), convey.ShouldResemble, []string{"A", "B"})
		convey.So(SplitList(""), convey.ShouldResemble, []string{})
	})
}
