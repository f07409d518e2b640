package config

type AppConfig struct {
	Server  ServerConfig
	Log     LogConfig
	Persist PersistConfig
	Economy EconomyConfig
	Game    GameConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	persistCfg, err := LoadPersist()
	if err != nil {
		return AppConfig{}, err
	}
	economyCfg, err := LoadEconomy()
	if err != nil {
		return AppConfig{}, err
	}
	gameCfg, err := LoadGame()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:  serverCfg,
		Log:     logCfg,
		Persist: persistCfg,
		Economy: economyCfg,
		Game:    gameCfg,
	}, nil
}
