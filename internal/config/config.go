package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Engine   Engine   `koanf:"engine"`
	Holidays Holidays `koanf:"holidays"`
}

type Database struct {
	Path string `koanf:"path"`
}

// Engine carries the aggregation thresholds, all in minutes.
type Engine struct {
	MergeGapMinutes    int `koanf:"mergegapminutes"`
	BreakMinGapMinutes int `koanf:"breakmingapminutes"`
	BreakCapMinutes    int `koanf:"breakcapminutes"`
}

type Holidays struct {
	// Region selects the German state calendar (BW, BY, HE, NI, NW, RP, SL).
	Region string `koanf:"region"`
	// GoogleApiKey switches holiday lookup to the public Google Calendar feed.
	GoogleApiKey     string `koanf:"googleapikey"`
	GoogleCalendarId string `koanf:"googlecalendarid"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Path: "fahrzeit.db",
		},
		Engine: Engine{
			MergeGapMinutes:    15,
			BreakMinGapMinutes: 15,
			BreakCapMinutes:    120,
		},
		Holidays: Holidays{
			Region: "HE",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FAHRZEIT_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FAHRZEIT_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
