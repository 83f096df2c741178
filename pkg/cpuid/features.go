// Copyright 2024 The vmcheck Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpuid

// The flag register catalog. One tag type per modeled 32-bit flag
// register; the aliases below are the types the rest of the package
// works with. Bit positions follow the Intel SDM and AMD APM layouts;
// unnamed positions are reserved and remain accessible through the raw
// register value.

type (
	leaf1ECX     struct{}
	leaf1EDX     struct{}
	leaf6EAX     struct{}
	leaf6ECX     struct{}
	leaf7EBX     struct{}
	leaf7ECX     struct{}
	leaf7EDX     struct{}
	leaf7Sub1EAX struct{}
	leafDSub1EAX struct{}
	leaf12EAX    struct{}
	leaf14EBX    struct{}
	leaf19EBX    struct{}
	extLeaf1ECX  struct{}
	extLeaf1EDX  struct{}
	extLeaf8EBX  struct{}
	extLeaf1FEAX struct{}
)

// Flag register types, named by (leaf, sub-leaf, register).
type (
	// Leaf1ECX is leaf 0x1 ecx, basic feature information.
	Leaf1ECX = Flags[leaf1ECX]
	// Leaf1EDX is leaf 0x1 edx, basic feature information.
	Leaf1EDX = Flags[leaf1EDX]
	// Leaf6EAX is leaf 0x6 eax, thermal and power management.
	Leaf6EAX = Flags[leaf6EAX]
	// Leaf6ECX is leaf 0x6 ecx, thermal and power management.
	Leaf6ECX = Flags[leaf6ECX]
	// Leaf7EBX is leaf 0x7 sub-leaf 0 ebx, extended features.
	Leaf7EBX = Flags[leaf7EBX]
	// Leaf7ECX is leaf 0x7 sub-leaf 0 ecx, extended features.
	Leaf7ECX = Flags[leaf7ECX]
	// Leaf7EDX is leaf 0x7 sub-leaf 0 edx, extended features.
	Leaf7EDX = Flags[leaf7EDX]
	// Leaf7Sub1EAX is leaf 0x7 sub-leaf 1 eax, extended features.
	Leaf7Sub1EAX = Flags[leaf7Sub1EAX]
	// LeafDSub1EAX is leaf 0xd sub-leaf 1 eax, xsave extensions.
	LeafDSub1EAX = Flags[leafDSub1EAX]
	// Leaf12EAX is leaf 0x12 sub-leaf 0 eax, SGX capabilities.
	Leaf12EAX = Flags[leaf12EAX]
	// Leaf14EBX is leaf 0x14 sub-leaf 0 ebx, processor trace.
	Leaf14EBX = Flags[leaf14EBX]
	// Leaf19EBX is leaf 0x19 sub-leaf 0 ebx, key locker.
	Leaf19EBX = Flags[leaf19EBX]
	// ExtLeaf1ECX is leaf 0x80000001 ecx, extended processor info.
	ExtLeaf1ECX = Flags[extLeaf1ECX]
	// ExtLeaf1EDX is leaf 0x80000001 edx, extended processor info.
	ExtLeaf1EDX = Flags[extLeaf1EDX]
	// ExtLeaf8EBX is leaf 0x80000008 ebx, extended capabilities.
	ExtLeaf8EBX = Flags[extLeaf8EBX]
	// ExtLeaf1FEAX is leaf 0x8000001f eax, memory encryption.
	ExtLeaf1FEAX = Flags[extLeaf1FEAX]
)

// Leaf 0x1 ecx. Bit 16 is reserved.
const (
	X86FeatureSSE3        Leaf1ECX = 1 << 0
	X86FeaturePCLMULQDQ   Leaf1ECX = 1 << 1
	X86FeatureDTES64      Leaf1ECX = 1 << 2
	X86FeatureMONITOR     Leaf1ECX = 1 << 3
	X86FeatureDSCPL       Leaf1ECX = 1 << 4
	X86FeatureVMX         Leaf1ECX = 1 << 5
	X86FeatureSMX         Leaf1ECX = 1 << 6
	X86FeatureEST         Leaf1ECX = 1 << 7
	X86FeatureTM2         Leaf1ECX = 1 << 8
	X86FeatureSSSE3       Leaf1ECX = 1 << 9
	X86FeatureCNXTID      Leaf1ECX = 1 << 10
	X86FeatureSDBG        Leaf1ECX = 1 << 11
	X86FeatureFMA         Leaf1ECX = 1 << 12
	X86FeatureCX16        Leaf1ECX = 1 << 13
	X86FeatureXTPR        Leaf1ECX = 1 << 14
	X86FeaturePDCM        Leaf1ECX = 1 << 15
	X86FeaturePCID        Leaf1ECX = 1 << 17
	X86FeatureDCA         Leaf1ECX = 1 << 18
	X86FeatureSSE41       Leaf1ECX = 1 << 19
	X86FeatureSSE42       Leaf1ECX = 1 << 20
	X86FeatureX2APIC      Leaf1ECX = 1 << 21
	X86FeatureMOVBE       Leaf1ECX = 1 << 22
	X86FeaturePOPCNT      Leaf1ECX = 1 << 23
	X86FeatureTSCDeadline Leaf1ECX = 1 << 24
	X86FeatureAES         Leaf1ECX = 1 << 25
	X86FeatureXSAVE       Leaf1ECX = 1 << 26
	X86FeatureOSXSAVE     Leaf1ECX = 1 << 27
	X86FeatureAVX         Leaf1ECX = 1 << 28
	X86FeatureF16C        Leaf1ECX = 1 << 29
	X86FeatureRDRAND      Leaf1ECX = 1 << 30
	X86FeatureHypervisor  Leaf1ECX = 1 << 31
)

// Leaf 0x1 edx. Bits 10 and 20 are reserved.
const (
	X86FeatureFPU   Leaf1EDX = 1 << 0
	X86FeatureVME   Leaf1EDX = 1 << 1
	X86FeatureDE    Leaf1EDX = 1 << 2
	X86FeaturePSE   Leaf1EDX = 1 << 3
	X86FeatureTSC   Leaf1EDX = 1 << 4
	X86FeatureMSR   Leaf1EDX = 1 << 5
	X86FeaturePAE   Leaf1EDX = 1 << 6
	X86FeatureMCE   Leaf1EDX = 1 << 7
	X86FeatureCX8   Leaf1EDX = 1 << 8
	X86FeatureAPIC  Leaf1EDX = 1 << 9
	X86FeatureSEP   Leaf1EDX = 1 << 11
	X86FeatureMTRR  Leaf1EDX = 1 << 12
	X86FeaturePGE   Leaf1EDX = 1 << 13
	X86FeatureMCA   Leaf1EDX = 1 << 14
	X86FeatureCMOV  Leaf1EDX = 1 << 15
	X86FeaturePAT   Leaf1EDX = 1 << 16
	X86FeaturePSE36 Leaf1EDX = 1 << 17
	X86FeaturePSN   Leaf1EDX = 1 << 18
	X86FeatureCLFSH Leaf1EDX = 1 << 19
	X86FeatureDS    Leaf1EDX = 1 << 21
	X86FeatureACPI  Leaf1EDX = 1 << 22
	X86FeatureMMX   Leaf1EDX = 1 << 23
	X86FeatureFXSR  Leaf1EDX = 1 << 24
	X86FeatureSSE   Leaf1EDX = 1 << 25
	X86FeatureSSE2  Leaf1EDX = 1 << 26
	X86FeatureSS    Leaf1EDX = 1 << 27
	X86FeatureHTT   Leaf1EDX = 1 << 28
	X86FeatureTM    Leaf1EDX = 1 << 29
	X86FeatureIA64  Leaf1EDX = 1 << 30
	X86FeaturePBE   Leaf1EDX = 1 << 31
)

// Leaf 0x6 eax. Bit 3 and bits 7 and up are reserved.
const (
	X86FeatureDTHERM     Leaf6EAX = 1 << 0
	X86FeatureTurboBoost Leaf6EAX = 1 << 1
	X86FeatureARAT       Leaf6EAX = 1 << 2
	X86FeaturePLN        Leaf6EAX = 1 << 4
	X86FeatureECMD       Leaf6EAX = 1 << 5
	X86FeaturePTM        Leaf6EAX = 1 << 6
)

// Leaf 0x6 ecx. Bit 2 and bits 4 and up are reserved.
const (
	X86FeatureHWCoordFeedback Leaf6ECX = 1 << 0
	X86FeatureACNT2           Leaf6ECX = 1 << 1
	X86FeatureEnergyPerfBias  Leaf6ECX = 1 << 3
)

// Leaf 0x7 sub-leaf 0 ebx.
const (
	X86FeatureFSGSBase      Leaf7EBX = 1 << 0
	X86FeatureTSCAdjust     Leaf7EBX = 1 << 1
	X86FeatureSGX           Leaf7EBX = 1 << 2
	X86FeatureBMI1          Leaf7EBX = 1 << 3
	X86FeatureHLE           Leaf7EBX = 1 << 4
	X86FeatureAVX2          Leaf7EBX = 1 << 5
	X86FeatureFDPExcptnOnly Leaf7EBX = 1 << 6
	X86FeatureSMEP          Leaf7EBX = 1 << 7
	X86FeatureBMI2          Leaf7EBX = 1 << 8
	X86FeatureERMS          Leaf7EBX = 1 << 9
	X86FeatureINVPCID       Leaf7EBX = 1 << 10
	X86FeatureRTM           Leaf7EBX = 1 << 11
	X86FeaturePQM           Leaf7EBX = 1 << 12
	X86FeatureFPUCSDSDeprec Leaf7EBX = 1 << 13
	X86FeatureMPX           Leaf7EBX = 1 << 14
	X86FeaturePQE           Leaf7EBX = 1 << 15
	X86FeatureAVX512F       Leaf7EBX = 1 << 16
	X86FeatureAVX512DQ      Leaf7EBX = 1 << 17
	X86FeatureRDSEED        Leaf7EBX = 1 << 18
	X86FeatureADX           Leaf7EBX = 1 << 19
	X86FeatureSMAP          Leaf7EBX = 1 << 20
	X86FeatureAVX512IFMA    Leaf7EBX = 1 << 21
	X86FeaturePCOMMIT       Leaf7EBX = 1 << 22
	X86FeatureCLFLUSHOPT    Leaf7EBX = 1 << 23
	X86FeatureCLWB          Leaf7EBX = 1 << 24
	X86FeatureIntelPT       Leaf7EBX = 1 << 25
	X86FeatureAVX512PF      Leaf7EBX = 1 << 26
	X86FeatureAVX512ER      Leaf7EBX = 1 << 27
	X86FeatureAVX512CD      Leaf7EBX = 1 << 28
	X86FeatureSHA           Leaf7EBX = 1 << 29
	X86FeatureAVX512BW      Leaf7EBX = 1 << 30
	X86FeatureAVX512VL      Leaf7EBX = 1 << 31
)

// Leaf 0x7 sub-leaf 0 ecx. Bits 15, 24 and 26 are reserved; bits
// 17-21 hold the MPX mawau value, which is not a flag.
const (
	X86FeaturePREFETCHWT1     Leaf7ECX = 1 << 0
	X86FeatureAVX512VBMI      Leaf7ECX = 1 << 1
	X86FeatureUMIP            Leaf7ECX = 1 << 2
	X86FeaturePKU             Leaf7ECX = 1 << 3
	X86FeatureOSPKE           Leaf7ECX = 1 << 4
	X86FeatureWAITPKG         Leaf7ECX = 1 << 5
	X86FeatureAVX512VBMI2     Leaf7ECX = 1 << 6
	X86FeatureCETSS           Leaf7ECX = 1 << 7
	X86FeatureGFNI            Leaf7ECX = 1 << 8
	X86FeatureVAES            Leaf7ECX = 1 << 9
	X86FeatureVPCLMULQDQ      Leaf7ECX = 1 << 10
	X86FeatureAVX512VNNI      Leaf7ECX = 1 << 11
	X86FeatureAVX512BITALG    Leaf7ECX = 1 << 12
	X86FeatureTME             Leaf7ECX = 1 << 13
	X86FeatureAVX512VPOPCNTDQ Leaf7ECX = 1 << 14
	X86FeatureLA57            Leaf7ECX = 1 << 16
	X86FeatureRDPID           Leaf7ECX = 1 << 22
	X86FeatureKL              Leaf7ECX = 1 << 23
	X86FeatureCLDEMOTE        Leaf7ECX = 1 << 25
	X86FeatureMOVDIRI         Leaf7ECX = 1 << 27
	X86FeatureMOVDIR64B       Leaf7ECX = 1 << 28
	X86FeatureENQCMD          Leaf7ECX = 1 << 29
	X86FeatureSGXLC           Leaf7ECX = 1 << 30
	X86FeaturePKS             Leaf7ECX = 1 << 31
)

// Leaf 0x7 sub-leaf 0 edx. Bits 0-1, 6-7, 12, 17 and 21 are reserved.
const (
	X86FeatureAVX5124VNNIW       Leaf7EDX = 1 << 2
	X86FeatureAVX5124FMAPS       Leaf7EDX = 1 << 3
	X86FeatureFSRM               Leaf7EDX = 1 << 4
	X86FeatureUINTR              Leaf7EDX = 1 << 5
	X86FeatureAVX512VP2Intersect Leaf7EDX = 1 << 8
	X86FeatureSRBDSCtrl          Leaf7EDX = 1 << 9
	X86FeatureMDClear            Leaf7EDX = 1 << 10
	X86FeatureRTMAlwaysAbort     Leaf7EDX = 1 << 11
	X86FeatureTSXForceAbort      Leaf7EDX = 1 << 13
	X86FeatureSERIALIZE          Leaf7EDX = 1 << 14
	X86FeatureHybrid             Leaf7EDX = 1 << 15
	X86FeatureTSXLDTRK           Leaf7EDX = 1 << 16
	X86FeaturePCONFIG            Leaf7EDX = 1 << 18
	X86FeatureArchLBR            Leaf7EDX = 1 << 19
	X86FeatureCETIBT             Leaf7EDX = 1 << 20
	X86FeatureAMXBF16            Leaf7EDX = 1 << 22
	X86FeatureAVX512FP16         Leaf7EDX = 1 << 23
	X86FeatureAMXTile            Leaf7EDX = 1 << 24
	X86FeatureAMXInt8            Leaf7EDX = 1 << 25
	X86FeatureSpecCtrl           Leaf7EDX = 1 << 26
	X86FeatureSTIBP              Leaf7EDX = 1 << 27
	X86FeatureL1DFlush           Leaf7EDX = 1 << 28
	X86FeatureArchCapabilities   Leaf7EDX = 1 << 29
	X86FeatureCoreCapabilities   Leaf7EDX = 1 << 30
	X86FeatureSSBD               Leaf7EDX = 1 << 31
)

// Leaf 0x7 sub-leaf 1 eax.
const (
	X86FeatureAVXVNNI    Leaf7Sub1EAX = 1 << 4
	X86FeatureAVX512BF16 Leaf7Sub1EAX = 1 << 5
	X86FeatureFZRM       Leaf7Sub1EAX = 1 << 10
	X86FeatureFSRS       Leaf7Sub1EAX = 1 << 11
	X86FeatureFSRCS      Leaf7Sub1EAX = 1 << 12
	X86FeatureFRED       Leaf7Sub1EAX = 1 << 17
	X86FeatureLKGS       Leaf7Sub1EAX = 1 << 18
	X86FeatureHRESET     Leaf7Sub1EAX = 1 << 22
)

// Leaf 0xd sub-leaf 1 eax.
const (
	X86FeatureXSAVEOPT LeafDSub1EAX = 1 << 0
	X86FeatureXSAVEC   LeafDSub1EAX = 1 << 1
	X86FeatureXGETBV1  LeafDSub1EAX = 1 << 2
	X86FeatureXSAVES   LeafDSub1EAX = 1 << 3
)

// Leaf 0x12 sub-leaf 0 eax.
const (
	X86FeatureSGX1     Leaf12EAX = 1 << 0
	X86FeatureSGX2     Leaf12EAX = 1 << 1
	X86FeatureSGXOSS   Leaf12EAX = 1 << 5
	X86FeatureSGXENCLS Leaf12EAX = 1 << 6
)

// Leaf 0x14 sub-leaf 0 ebx.
const (
	X86FeaturePTWRITE Leaf14EBX = 1 << 4
)

// Leaf 0x19 sub-leaf 0 ebx.
const (
	X86FeatureAESKLE Leaf19EBX = 1 << 0
	X86FeatureWideKL Leaf19EBX = 1 << 2
	X86FeatureKLMSRs Leaf19EBX = 1 << 4
)

// Leaf 0x80000001 ecx.
const (
	X86FeatureLAHF64      ExtLeaf1ECX = 1 << 0
	X86FeatureCMPLegacy   ExtLeaf1ECX = 1 << 1
	X86FeatureSVM         ExtLeaf1ECX = 1 << 2
	X86FeatureExtAPIC     ExtLeaf1ECX = 1 << 3
	X86FeatureCR8Legacy   ExtLeaf1ECX = 1 << 4
	X86FeatureABM         ExtLeaf1ECX = 1 << 5
	X86FeatureSSE4A       ExtLeaf1ECX = 1 << 6
	X86FeatureMisAlignSSE ExtLeaf1ECX = 1 << 7
	X86Feature3DNowPref   ExtLeaf1ECX = 1 << 8
	X86FeatureOSVW        ExtLeaf1ECX = 1 << 9
	X86FeatureIBS         ExtLeaf1ECX = 1 << 10
	X86FeatureXOP         ExtLeaf1ECX = 1 << 11
	X86FeatureSKINIT      ExtLeaf1ECX = 1 << 12
	X86FeatureWDT         ExtLeaf1ECX = 1 << 13
	X86FeatureLWP         ExtLeaf1ECX = 1 << 15
	X86FeatureFMA4        ExtLeaf1ECX = 1 << 16
	X86FeatureTCE         ExtLeaf1ECX = 1 << 17
	X86FeatureNodeIDMSR   ExtLeaf1ECX = 1 << 19
	X86FeatureTBM         ExtLeaf1ECX = 1 << 21
	X86FeatureTopoExt     ExtLeaf1ECX = 1 << 22
	X86FeaturePerfCtrCore ExtLeaf1ECX = 1 << 23
	X86FeaturePerfCtrNB   ExtLeaf1ECX = 1 << 24
	X86FeatureDBX         ExtLeaf1ECX = 1 << 26
	X86FeaturePerfTSC     ExtLeaf1ECX = 1 << 27
	X86FeaturePCXL2I      ExtLeaf1ECX = 1 << 28
	X86FeatureMONITORX    ExtLeaf1ECX = 1 << 29
	X86FeatureAddrMaskExt ExtLeaf1ECX = 1 << 30
)

// Leaf 0x80000001 edx. Bits duplicated from leaf 0x1 edx are not
// re-declared here; read them from Leaf1EDX.
const (
	X86FeatureSYSCALL  ExtLeaf1EDX = 1 << 11
	X86FeatureMP       ExtLeaf1EDX = 1 << 19
	X86FeatureNX       ExtLeaf1EDX = 1 << 20
	X86FeatureMMXEXT   ExtLeaf1EDX = 1 << 22
	X86FeatureFXSROpt  ExtLeaf1EDX = 1 << 25
	X86FeaturePDPE1GB  ExtLeaf1EDX = 1 << 26
	X86FeatureRDTSCP   ExtLeaf1EDX = 1 << 27
	X86FeatureLM       ExtLeaf1EDX = 1 << 29
	X86Feature3DNowExt ExtLeaf1EDX = 1 << 30
	X86Feature3DNow    ExtLeaf1EDX = 1 << 31
)

// Leaf 0x80000008 ebx.
const (
	X86FeatureCLZERO        ExtLeaf8EBX = 1 << 0
	X86FeatureIRPerf        ExtLeaf8EBX = 1 << 1
	X86FeatureXSaveErPtr    ExtLeaf8EBX = 1 << 2
	X86FeatureINVLPGB       ExtLeaf8EBX = 1 << 3
	X86FeatureRDPRU         ExtLeaf8EBX = 1 << 4
	X86FeatureMCOMMIT       ExtLeaf8EBX = 1 << 8
	X86FeatureWBNOINVD      ExtLeaf8EBX = 1 << 9
	X86FeatureIBPB          ExtLeaf8EBX = 1 << 12
	X86FeatureWBINVDInt     ExtLeaf8EBX = 1 << 13
	X86FeatureAMDIBRS       ExtLeaf8EBX = 1 << 14
	X86FeatureAMDSTIBP      ExtLeaf8EBX = 1 << 15
	X86FeatureSTIBPAlwaysOn ExtLeaf8EBX = 1 << 17
	X86FeatureNoEferLMSLE   ExtLeaf8EBX = 1 << 20
	X86FeatureINVLPGBNested ExtLeaf8EBX = 1 << 21
	X86FeaturePPIN          ExtLeaf8EBX = 1 << 23
	X86FeatureAMDSSBD       ExtLeaf8EBX = 1 << 24
	X86FeatureVirtSSBD      ExtLeaf8EBX = 1 << 25
	X86FeatureSSBNo         ExtLeaf8EBX = 1 << 26
)

// Leaf 0x8000001f eax.
const (
	X86FeatureSME              ExtLeaf1FEAX = 1 << 0
	X86FeatureSEV              ExtLeaf1FEAX = 1 << 1
	X86FeaturePageFlushMSR     ExtLeaf1FEAX = 1 << 2
	X86FeatureSEVES            ExtLeaf1FEAX = 1 << 3
	X86FeatureSEVSNP           ExtLeaf1FEAX = 1 << 4
	X86FeatureVMPL             ExtLeaf1FEAX = 1 << 5
	X86FeatureHwCacheCoherency ExtLeaf1FEAX = 1 << 10
	X86FeatureHost64Bit        ExtLeaf1FEAX = 1 << 11
	X86FeatureRestrictedInj    ExtLeaf1FEAX = 1 << 12
	X86FeatureAlternateInj     ExtLeaf1FEAX = 1 << 13
	X86FeatureDebugSwap        ExtLeaf1FEAX = 1 << 14
	X86FeaturePreventHostIBS   ExtLeaf1FEAX = 1 << 15
	X86FeatureVTE              ExtLeaf1FEAX = 1 << 16
)
