package rstats

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// CommandRunner abstracts the Rscript subprocess so tests can substitute a
// canned transcript.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("execute %s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.String(), stderr.String(), nil
}

// Runner invokes the bootstrap tests of a user-supplied R script. For each
// comparison it writes a small driver that sources the script, calls the
// test function with the sample vectors, and prints the decision vectors
// line by line to stdout.
type Runner struct {
	// ScriptPath locates the R script defining dec_twosamplecomparison and
	// dec_anova.
	ScriptPath string
	// Bin is the Rscript executable. Empty means "Rscript" on PATH.
	Bin string
	// Alpha is the significance level passed through to the tests.
	Alpha float64
	// Resamples is the bootstrap iteration count (the tests' B parameter).
	Resamples int

	// Exec overrides subprocess execution, for tests.
	Exec CommandRunner
}

const (
	// DefaultAlpha and DefaultResamples match the parameters the original
	// evaluation used for all published comparisons.
	DefaultAlpha     = 0.05
	DefaultResamples = 999
)

func (r *Runner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "Rscript"
}

func (r *Runner) exec() CommandRunner {
	if r.Exec != nil {
		return r.Exec
	}
	return ExecRunner{}
}

func (r *Runner) alpha() float64 {
	if r.Alpha > 0 {
		return r.Alpha
	}
	return DefaultAlpha
}

func (r *Runner) resamples() int {
	if r.Resamples > 0 {
		return r.Resamples
	}
	return DefaultResamples
}

// TwoSample runs dec_twosamplecomparison on two sample vectors.
func (r *Runner) TwoSample(ctx context.Context, a, b []float64) (TwoSampleResult, error) {
	driver := twoSampleDriver(r.ScriptPath, a, b, r.alpha(), r.resamples())
	out, err := r.runDriver(ctx, "two-sample comparison", driver)
	if err != nil {
		return TwoSampleResult{}, err
	}
	res, err := parseTwoSample(out)
	if err != nil {
		return TwoSampleResult{}, &ExternalToolError{Op: "two-sample comparison", Err: err}
	}
	return res, nil
}

// Anova runs dec_anova on two or more sample vectors.
func (r *Runner) Anova(ctx context.Context, groups [][]float64) (AnovaResult, error) {
	if len(groups) < 2 {
		return AnovaResult{}, &ExternalToolError{Op: "anova", Err: fmt.Errorf("need at least 2 groups, got %d", len(groups))}
	}
	driver := anovaDriver(r.ScriptPath, groups, r.alpha(), r.resamples())
	out, err := r.runDriver(ctx, "anova", driver)
	if err != nil {
		return AnovaResult{}, err
	}
	res, err := parseAnova(out, len(groups))
	if err != nil {
		return AnovaResult{}, &ExternalToolError{Op: "anova", Err: err}
	}
	return res, nil
}

func (r *Runner) runDriver(ctx context.Context, op, driver string) (string, error) {
	dir, err := os.MkdirTemp("", "fuzzstats-r-*")
	if err != nil {
		return "", &ExternalToolError{Op: op, Err: fmt.Errorf("create driver dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "driver.R")
	if err := os.WriteFile(path, []byte(driver), 0o600); err != nil {
		return "", &ExternalToolError{Op: op, Err: fmt.Errorf("write driver script: %w", err)}
	}

	stdout, stderr, err := r.exec().Run(ctx, r.bin(), path)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &ExternalToolError{Op: op, Err: err}
	}
	return stdout, nil
}

func twoSampleDriver(scriptPath string, a, b []float64, alpha float64, resamples int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source(%s)\n", rString(scriptPath))
	fmt.Fprintf(&sb, "f1 <- %s\n", rVector(a))
	fmt.Fprintf(&sb, "f2 <- %s\n", rVector(b))
	fmt.Fprintf(&sb, "res <- dec_twosamplecomparison(f1=f1, f2=f2, alpha=%v, B=%d)\n", alpha, resamples)
	sb.WriteString(`cat("twosample", res, "\n")` + "\n")
	return sb.String()
}

func anovaDriver(scriptPath string, groups [][]float64, alpha float64, resamples int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source(%s)\n", rString(scriptPath))
	vecs := make([]string, len(groups))
	for i, g := range groups {
		vecs[i] = rVector(g)
	}
	fmt.Fprintf(&sb, "groups <- list(%s)\n", strings.Join(vecs, ", "))
	fmt.Fprintf(&sb, "res <- dec_anova(groups, alpha=%v, B=%d)\n", alpha, resamples)
	sb.WriteString(`cat("anova", res[[1]], res[[2]], "\n")` + "\n")
	sb.WriteString(`cat("critvals", res[[3]], "\n")` + "\n")
	sb.WriteString(`ph <- res[[4]]` + "\n")
	sb.WriteString(`for (i in seq_along(ph[[1]])) cat("posthoc", ph[[1]][i], ph[[2]][i], ph[[3]][i], ph[[4]][i], "\n")` + "\n")
	sb.WriteString(`phm <- res[[5]]` + "\n")
	sb.WriteString(`for (i in seq_along(phm[[1]])) cat("posthoc-mean", phm[[1]][i], phm[[2]][i], phm[[3]][i], phm[[4]][i], "\n")` + "\n")
	return sb.String()
}

func rString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func rVector(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "c(" + strings.Join(parts, ", ") + ")"
}

// parseTwoSample decodes a "twosample <statistic> <critval> <decision>"
// line. The decision must be exactly 0 or 1.
func parseTwoSample(out string) (TwoSampleResult, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "twosample" {
			continue
		}
		if len(fields) != 4 {
			return TwoSampleResult{}, fmt.Errorf("expected 3 result values, got %d in %q", len(fields)-1, line)
		}
		stat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return TwoSampleResult{}, fmt.Errorf("bad test statistic %q", fields[1])
		}
		crit, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return TwoSampleResult{}, fmt.Errorf("bad critical value %q", fields[2])
		}
		dec, err := parseDecision(fields[3])
		if err != nil {
			return TwoSampleResult{}, err
		}
		return TwoSampleResult{Statistic: stat, CriticalValue: crit, Significant: dec}, nil
	}
	return TwoSampleResult{}, fmt.Errorf("no twosample result line in output %q", strings.TrimSpace(out))
}

// parseAnova decodes the anova/critvals/posthoc line protocol emitted by the
// anova driver. Posthoc sample indices are 1-based in R and converted here.
func parseAnova(out string, numGroups int) (AnovaResult, error) {
	var res AnovaResult
	var sawAnova, sawCritVals bool
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "anova":
			if len(fields) != 3 {
				return res, fmt.Errorf("expected 2 anova values, got %d in %q", len(fields)-1, line)
			}
			dec, err := parseDecision(fields[1])
			if err != nil {
				return res, err
			}
			stat, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return res, fmt.Errorf("bad anova statistic %q", fields[2])
			}
			res.Significant = dec
			res.Statistic = stat
			sawAnova = true
		case "critvals":
			if len(fields) != 4 {
				return res, fmt.Errorf("expected 3 critical values, got %d in %q", len(fields)-1, line)
			}
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return res, fmt.Errorf("bad critical value %q", fields[i+1])
				}
				res.CritVals[i] = v
			}
			sawCritVals = true
		case "posthoc", "posthoc-mean":
			row, err := parsePosthocRow(fields, numGroups)
			if err != nil {
				return res, err
			}
			if fields[0] == "posthoc" {
				res.Posthoc = append(res.Posthoc, row)
			} else {
				res.PosthocMean = append(res.PosthocMean, row)
			}
		}
	}
	if !sawAnova {
		return res, fmt.Errorf("no anova result line in output %q", strings.TrimSpace(out))
	}
	if !sawCritVals {
		return res, fmt.Errorf("no critvals line in output")
	}
	return res, nil
}

func parsePosthocRow(fields []string, numGroups int) (PosthocRow, error) {
	if len(fields) != 5 {
		return PosthocRow{}, fmt.Errorf("expected 4 posthoc values, got %d", len(fields)-1)
	}
	dec, err := parseDecision(fields[1])
	if err != nil {
		return PosthocRow{}, err
	}
	stat, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return PosthocRow{}, fmt.Errorf("bad posthoc statistic %q", fields[2])
	}
	i1, err := parseSampleIndex(fields[3], numGroups)
	if err != nil {
		return PosthocRow{}, err
	}
	i2, err := parseSampleIndex(fields[4], numGroups)
	if err != nil {
		return PosthocRow{}, err
	}
	return PosthocRow{Sample1: i1, Sample2: i2, Significant: dec, Statistic: stat}, nil
}

func parseDecision(s string) (bool, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || (v != 0 && v != 1) {
		return false, fmt.Errorf("unexpected test decision %q (want 0 or 1)", s)
	}
	return v == 1, nil
}

// parseSampleIndex validates that an R posthoc index is a whole number in
// range and converts it to zero-based.
func parseSampleIndex(s string, numGroups int) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad sample index %q", s)
	}
	idx := int(v)
	if float64(idx) != v || idx < 1 || idx > numGroups {
		return 0, fmt.Errorf("sample index %q out of range 1..%d", s, numGroups)
	}
	return idx - 1, nil
}
