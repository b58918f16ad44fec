package config

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/pkg/errors"
)

type Helper interface {
	GetParameter(string) (string, error)
}

/* for dev env */
type devHelper struct{}

func (s *devHelper) GetParameter(key string) (string, error) {
	return key, nil
}

/* ssm */
type ssmHelper struct {
	app, env string
	svc      *ssm.SSM
}

func (s *ssmHelper) GetParameter(key string) (string, error) {
	k := fmt.Sprintf("/%s/%s/%s", s.env, s.app, strings.TrimPrefix(key, "/"))
	output, err := s.svc.GetParameter(&ssm.GetParameterInput{
		Name:           &k,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "ssm get %s", k)
	}
	return aws.StringValue(output.Parameter.Value), nil
}

// NewHelper resolves parameters through SSM for every env but development,
// where a key resolves to itself.
func NewHelper(app, env string, sc *SSM) (Helper, error) {
	if strings.ToLower(env) == "development" {
		return &devHelper{}, nil
	}
	config := &aws.Config{
		Region:   aws.String(sc.Region),
		LogLevel: aws.LogLevel(aws.LogOff),
	}
	s, err := session.NewSession(config)
	if err != nil {
		return nil, errors.Wrap(err, "initialise SSM")
	}
	return &ssmHelper{app: app, env: env, svc: ssm.New(s)}, nil
}
