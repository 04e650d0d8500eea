package account

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

// Account is one assumable principal in the registry. Name is the identity
// callers put in URLs; AccountID is the 12-digit vendor account number.
type Account struct {
	Name       string  `yaml:"name" validate:"required"`
	AccountID  string  `yaml:"accountId" validate:"required,len=12,numeric"`
	Region     string  `yaml:"region" validate:"required"`
	RoleArn    string  `yaml:"roleArn" validate:"required"`
	ExternalID *string `yaml:"externalId"`
}

// UnknownAccountError reports a lookup for a name the registry does not hold.
type UnknownAccountError struct {
	Name string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %q", e.Name)
}

// Registry is the set of accounts the service may assume into. It is loaded
// once at startup and never changes afterwards; there is no reload path.
type Registry struct {
	accounts map[string]Account
	order    []string
}

type registryFile struct {
	Accounts []Account `yaml:"accounts"`
}

func Load(path string) (*Registry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	r, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("accounts file %s: %w", path, err)
	}
	return r, nil
}

func Parse(content []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, errors.New("no accounts defined")
	}

	validate := validator.New()
	r := &Registry{accounts: make(map[string]Account, len(file.Accounts))}
	for _, acc := range file.Accounts {
		if err := validate.Struct(acc); err != nil {
			return nil, fmt.Errorf("account %q: %w", acc.Name, err)
		}
		if _, ok := r.accounts[acc.Name]; ok {
			return nil, fmt.Errorf("duplicate account %q", acc.Name)
		}
		r.accounts[acc.Name] = acc
		r.order = append(r.order, acc.Name)
	}
	return r, nil
}

func (r *Registry) Get(name string) (Account, error) {
	acc, ok := r.accounts[name]
	if !ok {
		return Account{}, &UnknownAccountError{Name: name}
	}
	return acc, nil
}

// List returns the accounts in file order.
func (r *Registry) List() []Account {
	out := make([]Account, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.accounts[name])
	}
	return out
}
