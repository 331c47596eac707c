package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ModelFile is the YAML layout of CONFIG_FILE:
//
//	models:
//	  random_forest: <file id>
//	  xgboost: <file id>
type ModelFile struct {
	Models struct {
		RandomForest string `mapstructure:"random_forest"`
		XGBoost      string `mapstructure:"xgboost"`
	} `mapstructure:"models"`
}

// ModelIDs merges env overrides with the file, file entries winning.
func (c ModelsConfig) ModelIDs(file *ModelFile) (randomForest, xgboost string) {
	randomForest, xgboost = c.RandomForestID, c.XGBoostID
	if file == nil {
		return
	}
	if file.Models.RandomForest != "" {
		randomForest = file.Models.RandomForest
	}
	if file.Models.XGBoost != "" {
		xgboost = file.Models.XGBoost
	}
	return
}

// ModelFileWatcher reads CONFIG_FILE and reports edits to it.
type ModelFileWatcher struct {
	v *viper.Viper
}

func OpenModelFile(path string) (*ModelFileWatcher, *ModelFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read model config %s: %w", path, err)
	}
	w := &ModelFileWatcher{v: v}
	mf, err := w.decode()
	if err != nil {
		return nil, nil, err
	}
	return w, mf, nil
}

func (w *ModelFileWatcher) decode() (*ModelFile, error) {
	var mf ModelFile
	if err := w.v.Unmarshal(&mf, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	return &mf, nil
}

// Watch calls onChange with the re-read file after every write, or onError
// when the new content does not parse.
func (w *ModelFileWatcher) Watch(onChange func(*ModelFile), onError func(error)) {
	w.v.OnConfigChange(func(evt fsnotify.Event) {
		mf, err := w.decode()
		if err != nil {
			onError(fmt.Errorf("%s: %w", evt.Name, err))
			return
		}
		onChange(mf)
	})
	w.v.WatchConfig()
}
