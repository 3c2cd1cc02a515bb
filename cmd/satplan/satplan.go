package main

import(
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skypies/util/date"
	"github.com/spf13/viper"

	"github.com/skypies/satplan"
	"github.com/skypies/satplan/fpdf"
	"github.com/skypies/satplan/planner"
	"github.com/skypies/satplan/predict"
	"github.com/skypies/satplan/tle"
)

var(
	ctx = context.Background()

	fConfig   string
	fLocator  string
	fSats     string
	fDate     string
	fFrom     string
	fTo       string
	fHours    int
	fDays     int
	fTimezone string
	fPdf      string
	fVerbose  bool
)

func init() {
	flag.StringVar(&fConfig, "config", "", "path to satplan.yaml (default: ./satplan.yaml)")
	flag.StringVar(&fLocator, "grid", "", "Maidenhead locator of the observer")
	flag.StringVar(&fSats, "sats", "", "comma-separated NORAD catalogue numbers")
	flag.StringVar(&fDate, "date", "", "first forecast day, YYYY-MM-DD (default: today)")
	flag.StringVar(&fFrom, "from", "", "earliest usable local time, HH:MM")
	flag.StringVar(&fTo, "to", "", "latest usable local time, HH:MM")
	flag.IntVar(&fHours, "hours", 0, "length of operating window to search for")
	flag.IntVar(&fDays, "days", 0, "number of days to forecast")
	flag.StringVar(&fTimezone, "tz", "", "IANA timezone override (default: lookup from grid)")
	flag.StringVar(&fPdf, "pdf", "", "also write a schedule grid PDF to this file")
	flag.BoolVar(&fVerbose, "v", false, "debug logging")
	flag.Parse()
}

// {{{ loadConfig

func loadConfig() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("locator", "")
	v.SetDefault("satellites", []int{})
	v.SetDefault("earliest", "08:00")
	v.SetDefault("latest", "22:00")
	v.SetDefault("hours", 2)
	v.SetDefault("days", 1)
	v.SetDefault("timezone", "")
	v.SetDefault("min_elevation", satplan.DefaultMinElevation)
	v.SetDefault("min_duration_min", int(satplan.DefaultMinDuration.Minutes()))
	v.SetDefault("tle.dir", "")
	v.SetDefault("tle.max_age_days", 7)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if fConfig != "" {
		v.SetConfigFile(fConfig)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("satplan")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("SATPLAN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// }}}
// {{{ newLogger

func newLogger(v *viper.Viper) *logrus.Logger {
	log := logrus.New()

	if v.GetString("logging.format") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(v.GetString("logging.level"))
	if err != nil { level = logrus.InfoLevel }
	log.SetLevel(level)

	if fVerbose { log.SetLevel(logrus.DebugLevel) }

	return log
}

// }}}
// {{{ requestFromArgs

// Flags win over the config file.
func requestFromArgs(v *viper.Viper) (planner.Request, error) {
	req := planner.Request{
		Locator:      v.GetString("locator"),
		Satellites:   v.GetIntSlice("satellites"),
		StartDate:    time.Now().Format("2006-01-02"),
		EarliestTime: v.GetString("earliest"),
		LatestTime:   v.GetString("latest"),
		OpHours:      v.GetInt("hours"),
		Days:         v.GetInt("days"),
		Timezone:     v.GetString("timezone"),
	}

	if fLocator != ""  { req.Locator = fLocator }
	if fDate != ""     { req.StartDate = fDate }
	if fFrom != ""     { req.EarliestTime = fFrom }
	if fTo != ""       { req.LatestTime = fTo }
	if fHours > 0      { req.OpHours = fHours }
	if fDays > 0       { req.Days = fDays }
	if fTimezone != "" { req.Timezone = fTimezone }

	if fSats != "" {
		req.Satellites = nil
		for _, field := range strings.Split(fSats, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return req, fmt.Errorf("bad catalogue number %q in -sats", field)
			}
			req.Satellites = append(req.Satellites, n)
		}
	}

	if req.Locator == "" {
		return req, fmt.Errorf("no locator; use -grid or set one in satplan.yaml")
	}
	if len(req.Satellites) == 0 {
		return req, fmt.Errorf("no satellites; use -sats or set some in satplan.yaml")
	}

	return req, nil
}

// }}}
// {{{ newPredictor

func newPredictor(v *viper.Viper, req planner.Request, log *logrus.Logger) (*predict.SGP4Predictor, error) {
	dir := v.GetString("tle.dir")
	if dir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			dir = filepath.Join(base, "satplan")
		}
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("TLE cache dir %s: %v", dir, err)
		}
	}

	loader := tle.NewLoader(dir, log)
	loader.MaxAge = time.Duration(v.GetInt("tle.max_age_days")) * 24 * time.Hour

	cat, err := loader.LoadCatalogue(ctx, req.Satellites)
	if err != nil {
		return nil, err
	}

	for _, entry := range cat {
		log.WithFields(logrus.Fields{
			"satellite": entry.Name,
			"age":       date.RoundDuration(entry.Age()),
		}).Debug("TLE loaded")
	}

	p := predict.NewPredictor(cat, log)
	p.Cfg.MinElevation = v.GetFloat64("min_elevation")
	p.Cfg.MinDuration = time.Duration(v.GetInt("min_duration_min")) * time.Minute

	return p, nil
}

// }}}

func main() {
	v, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log := newLogger(v)

	req, err := requestFromArgs(v)
	if err != nil { log.Fatal(err) }

	predictor, err := newPredictor(v, req, log)
	if err != nil { log.Fatal(err) }

	fc, err := planner.New(predictor, log).Run(ctx, req)
	if err != nil { log.Fatal(err) }

	fmt.Print(fc.Text())

	if fPdf != "" {
		f, err := os.Create(fPdf)
		if err != nil { log.Fatal(err) }

		if err := fpdf.WriteScheduleGrid(f, fc, req.OpHours); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil { log.Fatal(err) }

		log.WithField("file", fPdf).Info("schedule grid written")
	}
}
