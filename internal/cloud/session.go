// Package cloud holds the AWS-backed sinks: an S3 object store for exports
// and a DynamoDB table for timing samples.
package cloud

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

// AWSProfile is the shared-credentials profile used when ~/.aws/credentials exists.
const AWSProfile = "heightgen"

// NewSession opens an AWS session in region. A heightgen profile in the
// shared credentials file wins; otherwise the SDK's default chain applies.
func NewSession(region string) (*session.Session, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".aws", "credentials")
		if _, statErr := os.Stat(path); statErr == nil {
			cfg = cfg.WithCredentials(credentials.NewSharedCredentials(path, AWSProfile))
		}
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return sess, nil
}
