package runner

import (
	"testing"

	"kat/internal/localjudge/spec"
	"kat/internal/testutil"
	appErr "kat/pkg/errors"
)

func TestBuildCommandExpandsPlaceholders(t *testing.T) {
	paths := spec.NewPathContext("/work/hello", "/work/hello/hello.cpp")

	tests := []struct {
		name string
		tpl  string
		want []string
	}{
		{
			name: "compile",
			tpl:  "g++ -O2 -o {executable_path} {source_file}",
			want: []string{"g++", "-O2", "-o", "/work/hello/hello", "/work/hello/hello.cpp"},
		},
		{
			name: "executable only",
			tpl:  "{executable_path}",
			want: []string{"/work/hello/hello"},
		},
		{
			name: "class path",
			tpl:  "java -cp {output_directory} {source_file_no_ext}",
			want: []string{"java", "-cp", "/work/hello", "hello"},
		},
		{
			name: "repeated placeholder",
			tpl:  "echo {source_file_no_ext}-{source_file_no_ext}",
			want: []string{"echo", "hello-hello"},
		},
		{
			name: "unknown placeholder passes through",
			tpl:  "run {unknown} {source_file}",
			want: []string{"run", "{unknown}", "/work/hello/hello.cpp"},
		},
		{
			name: "quoting honored",
			tpl:  `sh -c "cat {source_file} | wc -l"`,
			want: []string{"sh", "-c", "cat /work/hello/hello.cpp | wc -l"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCommand(tt.tpl, paths)
			testutil.MustNoError(t, err)
			testutil.AssertDeepEqual(t, got, tt.want)
		})
	}
}

func TestBuildCommandWithoutPlaceholdersIsPlainSplit(t *testing.T) {
	paths := spec.NewPathContext("/p", "/p/a.py")
	got, err := BuildCommand(`python3 -u 'my script.py' --flag`, paths)
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, got, []string{"python3", "-u", "my script.py", "--flag"})

	again, err := BuildCommand(`python3 -u 'my script.py' --flag`, paths)
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, again, got)
}

func TestBuildCommandErrors(t *testing.T) {
	paths := spec.NewPathContext("/p", "/p/a.py")

	_, err := BuildCommand("   ", paths)
	testutil.AssertCode(t, err, appErr.CommandEmpty)

	_, err = BuildCommand(`python3 "unterminated`, paths)
	testutil.AssertCode(t, err, appErr.CommandParseFailed)
}
