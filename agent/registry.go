package agent

import (
	"github.com/hookbill/hookbill/api"
	"github.com/hookbill/hookbill/internal/registry"
)

var Global = registry.New[api.Agent]()

func Add(agent api.Agent) {
	Global.Add(agent.Name(), agent)
}

func Get(name string) (api.Agent, bool) {
	return Global.Get(name)
}

func Del(name string) {
	Global.Del(name)
}
