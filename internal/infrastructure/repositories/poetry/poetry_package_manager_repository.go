package poetry

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
	"github.com/rios0rios0/poetryupdater/internal/domain/repositories"
)

const packageManagerName = "poetry"

// CommandError is returned when the poetry process exits unsuccessfully.
type CommandError struct {
	Command string
	Dir     string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed in %s: %v\nOutput:\n%s", e.Command, e.Dir, e.Err, e.Output)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// PackageManagerRepository implements repositories.PackageManagerRepository
// by running the poetry binary inside each project directory.
type PackageManagerRepository struct {
	binary       string
	lockArgs     []string
	outdatedArgs []string
}

// NewPackageManagerRepository creates a poetry package manager from settings.
func NewPackageManagerRepository(settings entities.PackageManagerSettings) repositories.PackageManagerRepository {
	return &PackageManagerRepository{
		binary:       settings.Binary,
		lockArgs:     append([]string(nil), settings.LockArgs...),
		outdatedArgs: append([]string(nil), settings.OutdatedArgs...),
	}
}

func (r *PackageManagerRepository) Name() string { return packageManagerName }

// EnsureLock runs `poetry update --lock`, creating the lock file if needed.
func (r *PackageManagerRepository) EnsureLock(ctx context.Context, dir string) error {
	_, err := r.run(ctx, dir, r.lockArgs...)
	return err
}

// ListOutdated runs `poetry show --outdated` and parses its table.
func (r *PackageManagerRepository) ListOutdated(
	ctx context.Context,
	dir string,
	groups []string,
) ([]entities.PackageUpdate, error) {
	output, err := r.run(ctx, dir, r.outdatedCommand(groups)...)
	if err != nil {
		return nil, err
	}
	return ParseOutdated(output), nil
}

// WriteLock runs the lock command again so the lock file follows the manifest.
func (r *PackageManagerRepository) WriteLock(ctx context.Context, dir string) error {
	_, err := r.run(ctx, dir, r.lockArgs...)
	return err
}

func (r *PackageManagerRepository) outdatedCommand(groups []string) []string {
	args := append([]string(nil), r.outdatedArgs...)
	if len(groups) > 0 {
		args = append(args, "--with", strings.Join(groups, ","))
	}
	return args
}

func (r *PackageManagerRepository) run(ctx context.Context, dir string, args ...string) (string, error) {
	command := strings.Join(append([]string{r.binary}, args...), " ")
	logger.Debugf("[poetry] Running %q in %s", command, dir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Command: command,
			Dir:     dir,
			Output:  strings.TrimSpace(stderr.String() + "\n" + stdout.String()),
			Err:     err,
		}
	}

	logger.Debugf("[poetry] Output of %q:\n%s", command, stdout.String())
	return stdout.String(), nil
}
