package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// SecretManager pulls third-party API keys from Vault so they never live in
// config files. Keys are stored under secret/data/<name> with an "api_key"
// field.
type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) apiKey(name string) (string, error) {
	secret, err := sm.client.Logical().Read("secret/data/" + name)
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("no secret at %s", name)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed secret at %s", name)
	}
	key, ok := data["api_key"].(string)
	if !ok {
		return "", fmt.Errorf("secret %s has no api_key field", name)
	}
	return key, nil
}

func (sm *SecretManager) GetTranslateAPIKey() (string, error) {
	return sm.apiKey("translate")
}

func (sm *SecretManager) GetSpeechAPIKey() (string, error) {
	return sm.apiKey("speech")
}

func (sm *SecretManager) GetOpenRouterAPIKey() (string, error) {
	return sm.apiKey("openrouter")
}
