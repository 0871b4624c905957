package webdav

import (
	"github.com/studio-b12/gowebdav"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable"`
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

var clients = make(map[string]*WebDAV)

func NewClient(conf *Config) (*WebDAV, error) {

	cacheKey := conf.Endpoint + conf.Path + conf.User + conf.CustomPath
	if clients[cacheKey] != nil {
		return clients[cacheKey], nil
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	c.Connect()

	clients[cacheKey] = &WebDAV{
		Client: c,
		Config: conf,
	}
	return clients[cacheKey], nil
}
